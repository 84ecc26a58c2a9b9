package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
)

const (
	identityKey = "identity"

	// CookieName holds the access token for the page routes.
	CookieName = "access_token"
)

// IdentityFrom returns the identity the auth middleware stored on c, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

func setIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, &id)
}
