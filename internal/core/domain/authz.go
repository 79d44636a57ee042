package domain

import "errors"

var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// ErrEmptyRoleSet flags a gate configured with no allowed roles. An empty set
// almost always means a missing configuration, so it is rejected as a
// programmer error rather than treated as "allow all".
var ErrEmptyRoleSet = errors.New("required role set is empty")

// EnsureRole decides whether sess may pass a gate restricted to the required
// roles. It is a pure function: no I/O, deterministic for a given input.
//
// An absent (invalid) session is always ErrUnauthenticated, regardless of
// what was required. A valid session whose role is missing or outside the
// set is ErrForbidden. Membership is exact, no hierarchy.
func EnsureRole(sess Session, required RoleSet) error {
	if len(required) == 0 {
		return ErrEmptyRoleSet
	}
	if !sess.Valid() {
		return ErrUnauthenticated
	}
	if sess.Role == "" || !required.Contains(sess.Role) {
		return ErrForbidden
	}
	return nil
}

// EnsureAuthenticated is the session-only gate: any valid session passes.
func EnsureAuthenticated(sess Session) error {
	if !sess.Valid() {
		return ErrUnauthenticated
	}
	return nil
}
