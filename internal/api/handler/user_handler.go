package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me returns the caller's profile.
//
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /user/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.service.Me(c.Request().Context(), identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         user
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  userVerificationRequest  true  "Current and new password"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /user/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req userVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.service.ChangePassword(c.Request().Context(), identity(c), req.Password, req.NewPassword, c.RealIP())
	if errors.Is(err, domain.ErrInvalidCredential) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Error on password change")
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdatePhoneNumber sets the caller's phone number.
//
// @Summary      Change phone number
// @Tags         user
// @Security     BearerAuth
// @Param        phone_number  path  string  true  "New phone number"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /user/phonenumber/{phone_number} [put]
func (h *UserHandler) UpdatePhoneNumber(c echo.Context) error {
	phone := c.Param("phone_number")
	if phone == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "phone_number is required")
	}
	if err := h.service.UpdatePhoneNumber(c.Request().Context(), identity(c), phone); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
