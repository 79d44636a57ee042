package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/session"
)

func newTestManager() *session.Manager {
	return session.NewManager(
		session.NewCookieStore("__session", false, time.Hour),
		session.NewCodec("secret", time.Hour),
		zerolog.Nop(),
	)
}

func issueCookie(t *testing.T, mgr *session.Manager, sess domain.Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := mgr.Issue(rec, sess); err != nil {
		t.Fatalf("issue session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestSessionMiddleware_ValidCookie(t *testing.T) {
	e := echo.New()
	mgr := newTestManager()
	want := domain.Session{SubjectID: "u1", Role: domain.RoleAdmin}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(issueCookie(t, mgr, want))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Session(mgr)
	handler := mw(func(c echo.Context) error {
		called = true
		got, ok := CurrentSession(c)
		if !ok {
			t.Fatalf("session not injected")
		}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSessionMiddleware_NoCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(newTestManager())
	handler := mw(func(c echo.Context) error {
		if _, ok := CurrentSession(c); ok {
			t.Fatalf("expected no session")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionMiddleware_MalformedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: "not-a-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// The request proceeds exactly like one with no cookie at all.
	mw := Session(newTestManager())
	handler := mw(func(c echo.Context) error {
		if _, ok := CurrentSession(c); ok {
			t.Fatalf("malformed cookie must not yield a session")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
