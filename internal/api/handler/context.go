package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/api/middleware"
	"github.com/workbase/console-api/internal/core/domain"
)

// requireSession extracts the session injected by the session middleware and
// fast-fails with 401 before any service call when it is absent. Handlers
// behind RequireSession/RequireRole still call this so they never run with a
// zero session if the route wiring is wrong.
func requireSession(c echo.Context) (domain.Session, error) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return sess, nil
}
