package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/security"
)

// Require enforces op against the identity set by Auth. Denials are returned
// as domain errors for the HTTP error handler to map.
func Require(op security.Operation) echo.MiddlewareFunc {
	var gate security.Gate
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := gate.Authorize(IdentityFrom(c), op); err != nil {
				return err
			}
			return next(c)
		}
	}
}
