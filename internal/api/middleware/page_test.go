package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
)

func assertRedirectedToLogin(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != LoginPagePath {
		t.Fatalf("expected redirect to %s, got %q", LoginPagePath, loc)
	}
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName && ck.MaxAge < 0 && ck.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected access_token cookie to be cleared")
	}
}

func TestPageAuth_NoCookieRedirects(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/todos/todo-page", nil), rec)

	handler := PageAuth(acceptOnly("good", domain.Identity{}), zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRedirectedToLogin(t, rec)
}

func TestPageAuth_BadCookieRedirects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos/todo-page", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := PageAuth(acceptOnly("good", domain.Identity{}), zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRedirectedToLogin(t, rec)
}

func TestPageAuth_IgnoresBearerHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos/todo-page", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := PageAuth(acceptOnly("good", domain.Identity{Subject: "a", ID: 1}), zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("page routes must not accept the header")
		return nil
	})
	_ = handler(c)
	assertRedirectedToLogin(t, rec)
}

func TestPageAuth_ValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos/todo-page", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "good"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := PageAuth(acceptOnly("good", domain.Identity{Subject: "a", ID: 1}), zerolog.Nop())(func(c echo.Context) error {
		if IdentityFrom(c) == nil {
			t.Fatalf("identity not set")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
