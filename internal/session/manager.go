// Package session implements the cookie-carried session layer: a signed
// codec, a cookie store adapter, and a request-level accessor. There is no
// server-side session table; all session state lives in the HTTP exchange.
package session

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/workbase/console-api/internal/core/domain"
)

// ErrNoCookie reports that the request carried no session cookie at all,
// as opposed to a cookie that failed to decode.
var ErrNoCookie = errors.New("no session cookie")

// Manager composes the cookie store and codec into request-level session
// access. All methods are stateless with respect to the server and safe to
// call repeatedly within a request.
type Manager struct {
	store *CookieStore
	codec *Codec
	log   zerolog.Logger
}

func NewManager(store *CookieStore, codec *Codec, log zerolog.Logger) *Manager {
	return &Manager{store: store, codec: codec, log: log}
}

// Resolve returns the session carried by the request. ErrNoCookie means the
// cookie was missing; a *DecodeError means it was present but unusable. Most
// callers want Current, which folds both into plain absence; the split
// exists for logging and metrics only.
func (m *Manager) Resolve(r *http.Request) (domain.Session, error) {
	raw, ok := m.store.Read(r)
	if !ok {
		return domain.Session{}, ErrNoCookie
	}
	sess, err := m.codec.Decode(raw)
	if err != nil {
		m.log.Debug().Err(err).Msg("session cookie rejected")
		return domain.Session{}, err
	}
	return sess, nil
}

// Current returns the session for the request, or false when there is none.
// A malformed cookie is indistinguishable from no cookie at this boundary.
func (m *Manager) Current(r *http.Request) (domain.Session, bool) {
	sess, err := m.Resolve(r)
	if err != nil {
		return domain.Session{}, false
	}
	return sess, true
}

// Issue encodes sess and sets the cookie on the response. Encode failures
// are logged here because they indicate a bug, not a client condition.
func (m *Manager) Issue(w http.ResponseWriter, sess domain.Session) error {
	raw, err := m.codec.Encode(sess)
	if err != nil {
		m.log.Error().Err(err).Str("subject_id", sess.SubjectID).Msg("session encode failed")
		return err
	}
	m.store.Write(w, raw)
	return nil
}

// Clear removes the session cookie. Idempotent.
func (m *Manager) Clear(w http.ResponseWriter) {
	m.store.Clear(w)
}
