package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
)

const (
	msgCouldNotValidate = "Could not validate user."
	msgAuthFailed       = "Authentication Failed"
	msgTodoNotFound     = "Todo not found."
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Counts auth denials by their internal kind.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var dup *domain.DuplicateIdentityError
	if errors.As(err, &dup) {
		return http.StatusBadRequest, dup.Error()
	}
	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusUnprocessableEntity, invalid.Reason
	}

	// Order matters: the more specific kinds wrap the general ones.
	switch {
	case errors.Is(err, domain.ErrExpiredCredential):
		deny("expired_credential")
		return http.StatusUnauthorized, msgCouldNotValidate
	case errors.Is(err, domain.ErrInvalidCredential):
		deny("invalid_credential")
		return http.StatusUnauthorized, msgCouldNotValidate
	case errors.Is(err, domain.ErrInsufficientRole):
		deny("insufficient_role")
		log.Info().Str("path", c.Path()).Msg("admin route denied")
		return http.StatusUnauthorized, msgAuthFailed
	case errors.Is(err, domain.ErrUnauthenticated):
		deny("unauthenticated")
		return http.StatusUnauthorized, msgAuthFailed
	case errors.Is(err, domain.ErrTooManyAttempts):
		deny("too_many_attempts")
		return http.StatusTooManyRequests, "Too many failed login attempts. Try again later."
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, msgTodoNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusBadRequest, "User already exists."
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity, "invalid input"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func deny(reason string) {
	metrics.AuthDenialsTotal.WithLabelValues(reason).Inc()
}
