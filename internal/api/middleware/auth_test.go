package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/security"
)

type stubVerifier struct {
	verifyFn func(token string) (domain.Identity, error)
}

func (s *stubVerifier) Verify(token string) (domain.Identity, error) {
	return s.verifyFn(token)
}

func acceptOnly(want string, id domain.Identity) *stubVerifier {
	return &stubVerifier{verifyFn: func(token string) (domain.Identity, error) {
		if token != want {
			return domain.Identity{}, domain.ErrInvalidCredential
		}
		return id, nil
	}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	secret := []byte("secret")
	issuer, err := security.NewIssuer(security.TokenConfig{Secret: secret})
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	verifier, err := security.NewVerifier(security.TokenConfig{Secret: secret})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	signed, err := issuer.Issue("alice", 7, domain.RoleAdmin, 20*time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true
		id := IdentityFrom(c)
		if id == nil {
			t.Fatalf("identity not set")
		}
		if id.Subject != "alice" || id.ID != 7 || id.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(acceptOnly("from-cookie", domain.Identity{Subject: "bob", ID: 2}))(func(c echo.Context) error {
		if IdentityFrom(c).Subject != "bob" {
			t.Fatalf("identity not taken from cookie")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthMiddleware_HeaderWinsOverCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(acceptOnly("from-header", domain.Identity{Subject: "carol", ID: 3}))(func(c echo.Context) error {
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("expected header token to be used, got %v", err)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(acceptOnly("x", domain.Identity{}))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(acceptOnly("abc", domain.Identity{}))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(acceptOnly("good", domain.Identity{}))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
