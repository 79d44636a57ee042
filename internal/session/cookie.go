package session

import (
	"net/http"
	"time"
)

// DefaultCookieName is the cookie the session travels in unless configured
// otherwise.
const DefaultCookieName = "__session"

// CookieStore reads and writes the session cookie on the HTTP exchange.
// It holds no server state; the cookie is the store.
type CookieStore struct {
	name   string
	secure bool
	ttl    time.Duration
}

// NewCookieStore creates a store for the named cookie. secure should be true
// in any non-development deployment; ttl <= 0 yields a browser-session
// cookie with no Expires attribute.
func NewCookieStore(name string, secure bool, ttl time.Duration) *CookieStore {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieStore{name: name, secure: secure, ttl: ttl}
}

// Read extracts the raw session cookie value from the request headers.
// The second return reports presence; an empty cookie counts as absent.
func (s *CookieStore) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Write sets the session cookie on the response: HttpOnly always, Path=/,
// SameSite=Lax, Secure per configuration.
func (s *CookieStore) Write(w http.ResponseWriter, raw string) {
	c := &http.Cookie{
		Name:     s.name,
		Value:    raw,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	}
	if s.ttl > 0 {
		c.MaxAge = int(s.ttl / time.Second)
		c.Expires = time.Now().Add(s.ttl)
	}
	http.SetCookie(w, c)
}

// Clear overwrites the cookie with an empty value and a past expiry, forcing
// client deletion. Safe to call whether or not a cookie existed.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
