package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workbase/console-api/internal/api/handler"
	"github.com/workbase/console-api/internal/api/middleware"
	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/service"
	"github.com/workbase/console-api/internal/session"
)

// memUserRepo is an in-memory ports.UserRepository for end-to-end tests.
type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.users[user.Email] = &clone
	return user, nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) SetOnboardingComplete(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.OnboardingComplete = true
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	counts := make(map[domain.Role]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

type memProjectRepo struct{}

func (memProjectRepo) Insert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	return p, nil
}
func (memProjectRepo) ListByOwner(context.Context, string) ([]domain.Project, error) {
	return nil, nil
}
func (memProjectRepo) ListAll(context.Context) ([]domain.Project, error) { return nil, nil }
func (memProjectRepo) Count(context.Context) (int64, error)              { return 0, nil }

// newTestServer assembles the session and admin surface with in-memory
// storage, mirroring the production route wiring in NewRouter.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("manager123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &memUserRepo{users: map[string]*domain.User{
		"manager@example.com": {
			ID:           "u-manager",
			Email:        "manager@example.com",
			DisplayName:  "Max Manager",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
		},
	}}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	sessions := session.NewManager(
		session.NewCookieStore("__session", false, time.Hour),
		session.NewCodec("test-secret", time.Hour),
		zerolog.Nop(),
	)
	e.Use(middleware.Session(sessions))

	authService := service.NewAuthService(users, nil, zerolog.Nop())
	sessionHandler := handler.NewSessionHandler(authService, sessions, nil)
	adminHandler := handler.NewAdminHandler(users, memProjectRepo{})

	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/logout", sessionHandler.Logout)
	e.GET("/session/current", sessionHandler.Current)
	admin := e.Group("/admin")
	admin.GET("/stats", adminHandler.Stats, middleware.RequireRole(domain.RoleOwner))
	admin.GET("/users", adminHandler.Users, middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))

	return e
}

func login(t *testing.T, e *echo.Echo, email, password string) *http.Cookie {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/session/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "__session" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("login did not set a session cookie")
	return nil
}

func TestEndToEnd_AdminRoleGating(t *testing.T) {
	e := newTestServer(t)

	// Login as the seeded admin account.
	cookie := login(t, e, "manager@example.com", "manager123")

	// Owner-only route: a valid admin session is 403, not 401.
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on owner-only route, got %d", rec.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("invalid error json: %v", err)
	}
	if errBody["code"] != "forbidden" || errBody["error"] == "" {
		t.Fatalf("unexpected error envelope: %v", errBody)
	}

	// {admin, owner} route: the same session passes.
	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on admin route, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("user listing must not leak password hashes: %s", rec.Body.String())
	}
}

func TestEndToEnd_UnauthenticatedAdmin(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("invalid error json: %v", err)
	}
	if errBody["code"] != "unauthenticated" {
		t.Fatalf("unexpected error envelope: %v", errBody)
	}
}

func TestEndToEnd_CurrentSessionProbe(t *testing.T) {
	e := newTestServer(t)

	// Without a cookie the probe is a plain 200, never 401.
	req := httptest.NewRequest(http.MethodGet, "/session/current", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"logged_in":false`) {
		t.Fatalf("expected logged_in=false, got %s", rec.Body.String())
	}

	// A tampered cookie behaves identically to no cookie.
	req = httptest.NewRequest(http.MethodGet, "/session/current", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: "tampered.token.value"})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"logged_in":false`) {
		t.Fatalf("tampered cookie must read as logged out, got %d: %s", rec.Code, rec.Body.String())
	}

	// With a fresh login the probe reports the identity.
	cookie := login(t, e, "manager@example.com", "manager123")
	req = httptest.NewRequest(http.MethodGet, "/session/current", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"logged_in":true`) {
		t.Fatalf("expected logged-in probe, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEndToEnd_InvalidLogin(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/session/login",
		strings.NewReader(`{"email":"manager@example.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("invalid error json: %v", err)
	}
	if errBody["code"] != "invalid_credentials" {
		t.Fatalf("unexpected error envelope: %v", errBody)
	}
}

func TestEndToEnd_LogoutThenProbe(t *testing.T) {
	e := newTestServer(t)
	cookie := login(t, e, "manager@example.com", "manager123")

	req := httptest.NewRequest(http.MethodPost, "/session/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "__session" {
			cleared = c
		}
	}
	if cleared == nil || cleared.Value != "" || cleared.MaxAge != -1 {
		t.Fatalf("logout must clear the session cookie, got %+v", cleared)
	}
}
