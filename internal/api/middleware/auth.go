package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// Auth verifies the access token and stores the resulting identity on the
// context. The Authorization header wins over the access_token cookie.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return err
			}

			id, err := verify(verifier, token)
			if err != nil {
				return err
			}

			setIdentity(c, id)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return strings.TrimSpace(parts[1]), nil
}

func verify(verifier ports.TokenVerifier, token string) (domain.Identity, error) {
	id, err := verifier.Verify(token)
	switch {
	case err == nil:
		metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrExpiredCredential):
		metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
	default:
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
	}
	return id, err
}
