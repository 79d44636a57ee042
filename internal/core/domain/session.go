package domain

import "errors"

// ErrSessionTooLarge is returned when an encoded session would exceed the
// cookie size limit. With the fixed field set below this indicates a
// programming error, not a runtime condition.
var ErrSessionTooLarge = errors.New("encoded session exceeds cookie size limit")

// Session is the set of claims carried in the session cookie for the
// lifetime of a browser session. The cookie is the only store: there is no
// server-side session table, and a session is "mutated" only by re-issuing
// the cookie.
type Session struct {
	SubjectID          string `json:"subject_id"`
	Email              string `json:"email,omitempty"`
	DisplayName        string `json:"display_name,omitempty"`
	Role               Role   `json:"role,omitempty"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

// Valid reports whether the session represents an authenticated subject.
// A session without a subject ID is absent, never an anonymous session.
func (s Session) Valid() bool {
	return s.SubjectID != ""
}

// NewSession mints the session record for an authenticated user.
func NewSession(u *User) Session {
	return Session{
		SubjectID:          u.ID,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		Role:               u.Role,
		OnboardingComplete: u.OnboardingComplete,
	}
}
