package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/api/metrics"
	"github.com/workbase/console-api/internal/core/domain"
)

// RequireRole gates a route on exact membership in the allowed roles. An
// unauthenticated request is 401 before any role consideration; a valid
// session outside the set is 403. Status mapping happens in the central
// error handler.
func RequireRole(allowed ...domain.Role) echo.MiddlewareFunc {
	required := domain.NewRoleSet(allowed...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := CurrentSession(c)
			if err := domain.EnsureRole(sess, required); err != nil {
				countDenial(err)
				return err
			}
			return next(c)
		}
	}
}

// RequireSession admits any authenticated session, regardless of role.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := CurrentSession(c)
			if err := domain.EnsureAuthenticated(sess); err != nil {
				countDenial(err)
				return err
			}
			return next(c)
		}
	}
}

func countDenial(err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.AuthzDenialsTotal.WithLabelValues("unauthenticated").Inc()
	case errors.Is(err, domain.ErrForbidden):
		metrics.AuthzDenialsTotal.WithLabelValues("forbidden").Inc()
	}
}
