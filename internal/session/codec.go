package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workbase/console-api/internal/core/domain"
)

// maxCookieBytes is the conventional browser limit for a single cookie.
const maxCookieBytes = 4096

const defaultTTL = 24 * time.Hour

// ErrMalformed marks a cookie value that could not be decoded back into a
// session. Callers match it with errors.Is.
var ErrMalformed = errors.New("malformed session cookie")

// DecodeError carries the underlying parse failure for logging and tests.
// It satisfies errors.Is(err, ErrMalformed).
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("session: malformed cookie: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrMalformed }

// sessionClaims is the wire shape of the cookie value. Unknown claims in an
// incoming token are ignored, missing optional claims take their zero value.
type sessionClaims struct {
	Email              string `json:"email,omitempty"`
	DisplayName        string `json:"name,omitempty"`
	Role               string `json:"role,omitempty"`
	OnboardingComplete bool   `json:"onboarding_complete,omitempty"`
	jwt.RegisteredClaims
}

// Codec turns a session record into a cookie-safe string and back. The value
// is an HS256-signed compact token, so it is URL-safe by construction and a
// client cannot mint itself a role. The subject ID travels in the standard
// sub claim.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec signing with secret. Tokens expire after ttl;
// a non-positive ttl falls back to 24h.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode serializes sess into a signed cookie value. It fails with
// domain.ErrSessionTooLarge when the result would not fit in a cookie, which
// with the fixed claim set indicates a programming error upstream.
func (c *Codec) Encode(sess domain.Session) (string, error) {
	if !sess.Valid() {
		return "", errors.New("session: encode: missing subject id")
	}

	now := time.Now()
	claims := sessionClaims{
		Email:              sess.Email,
		DisplayName:        sess.DisplayName,
		Role:               string(sess.Role),
		OnboardingComplete: sess.OnboardingComplete,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign: %w", err)
	}
	if len(token) > maxCookieBytes {
		return "", domain.ErrSessionTooLarge
	}
	return token, nil
}

// Decode parses a cookie value back into a session. Any failure (bad
// serialization, wrong signature, expiry, missing subject) comes back as a
// *DecodeError; Decode never panics on hostile input. A role claim outside
// the closed enum is dropped rather than rejected, leaving a role-less
// session.
func (c *Codec) Decode(raw string) (domain.Session, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		if err == nil {
			err = errors.New("token rejected")
		}
		return domain.Session{}, &DecodeError{Err: err}
	}
	if claims.Subject == "" {
		return domain.Session{}, &DecodeError{Err: errors.New("missing subject claim")}
	}

	sess := domain.Session{
		SubjectID:          claims.Subject,
		Email:              claims.Email,
		DisplayName:        claims.DisplayName,
		OnboardingComplete: claims.OnboardingComplete,
	}
	if role, ok := domain.ParseRole(claims.Role); ok {
		sess.Role = role
	}
	return sess, nil
}
