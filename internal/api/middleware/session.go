package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/api/metrics"
	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/session"
)

// SessionKey is the echo context key the resolved session is stored under.
const SessionKey = "session"

// Session resolves the session cookie once per request and injects the typed
// session into the Echo context. A request without a usable cookie proceeds
// with no session set; gating is RequireRole's job. A malformed cookie is
// counted but otherwise treated exactly like a missing one.
func Session(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := mgr.Resolve(c.Request())
			switch {
			case err == nil:
				c.Set(SessionKey, sess)
			case errors.Is(err, session.ErrMalformed):
				metrics.SessionDecodeFailuresTotal.Inc()
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session injected by the Session middleware.
// The second return is false when the request carries no valid session.
func CurrentSession(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(SessionKey).(domain.Session)
	if !ok || !sess.Valid() {
		return domain.Session{}, false
	}
	return sess, true
}
