package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/api/metrics"
	"github.com/workbase/console-api/internal/api/middleware"
	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
	"github.com/workbase/console-api/internal/session"
)

// ActivityRecorder is the interface handlers use to enqueue activity events.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// SessionHandler owns the session lifecycle: login mints and sets the
// cookie, logout clears it, current probes it.
type SessionHandler struct {
	authService ports.AuthService
	sessions    *session.Manager
	recorder    ActivityRecorder
}

func NewSessionHandler(authService ports.AuthService, sessions *session.Manager, recorder ActivityRecorder) *SessionHandler {
	return &SessionHandler{authService: authService, sessions: sessions, recorder: recorder}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	LoggedIn bool            `json:"logged_in"`
	User     *domain.Session `json:"user,omitempty"`
}

// Login verifies credentials and issues the session cookie.
//
// @Summary      Log in and receive a session cookie
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	sess := domain.NewSession(user)
	if err := h.sessions.Issue(c.Response(), sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()
	h.record(user.ID, domain.ActionLogin, "")

	return c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, User: &sess})
}

// Logout clears the session cookie. Idempotent: succeeds whether or not a
// session existed.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if sess, ok := middleware.CurrentSession(c); ok {
		h.record(sess.SubjectID, domain.ActionLogout, "")
	}
	h.sessions.Clear(c.Response())
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Current reports the session carried by the request. Never errors: a
// missing or malformed cookie is plain {"logged_in": false}.
//
// @Summary      Probe the current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session/current [get]
func (h *SessionHandler) Current(c echo.Context) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return c.JSON(http.StatusOK, sessionResponse{LoggedIn: false})
	}
	return c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, User: &sess})
}

// CompleteOnboarding marks the account as onboarded and re-issues the cookie
// so the claim travels with subsequent requests.
//
// @Summary      Complete onboarding
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /session/onboarding [post]
func (h *SessionHandler) CompleteOnboarding(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CompleteOnboarding(c.Request().Context(), sess.SubjectID)
	if err != nil {
		return err
	}

	updated := domain.NewSession(user)
	if err := h.sessions.Issue(c.Response(), updated); err != nil {
		return err
	}

	metrics.SessionsIssuedTotal.Inc()
	h.record(user.ID, domain.ActionOnboardingCompleted, "")

	return c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, User: &updated})
}

func (h *SessionHandler) record(actorID, action, subject string) {
	if h.recorder == nil {
		return
	}
	h.recorder.Record(domain.ActivityEvent{
		ActorID:   actorID,
		Action:    action,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
	})
}
