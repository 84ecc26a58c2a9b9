package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/ports"
)

const LoginPagePath = "/auth/login-page"

// PageAuth guards browser pages. It reads only the access_token cookie and,
// when that is missing or fails verification, clears the cookie and
// redirects to the login page.
func PageAuth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return RedirectToLogin(c)
			}

			id, err := verify(verifier, cookie.Value)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("page token rejected")
				return RedirectToLogin(c)
			}

			setIdentity(c, id)
			return next(c)
		}
	}
}

// RedirectToLogin clears the access token cookie and sends a 302 to the login page.
func RedirectToLogin(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, LoginPagePath)
}
