package session

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
)

const (
	sessionName = "catalog-session"
	maxAge      = 86400 * 30
)

const (
	keyState       = "state"
	keyAccessToken = "access_token"
	keyGoogleID    = "google_id"
	keyUserID      = "user_id"
	keyUsername    = "username"
	keyEmail       = "email"
	keyPicture     = "picture"
)

// Identity is the per-browser login record kept in the cookie session.
type Identity struct {
	UserID      uint
	Username    string
	Email       string
	Picture     string
	AccessToken string
	GoogleID    string
}

// Manager wraps the cookie store with typed access to the identity fields,
// the anti-forgery state and flash messages.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret []byte) *Manager {
	store := sessions.NewCookieStore(secret)
	store.MaxAge(maxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// Get only errors on an undecodable cookie; a fresh session is still
	// returned, which is what every caller wants.
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		log.Debug().Err(err).Msg("Session cookie could not be decoded, starting fresh")
	}
	return s
}

func (m *Manager) save(w http.ResponseWriter, r *http.Request, s *sessions.Session) {
	if err := s.Save(r, w); err != nil {
		log.Error().Err(err).Msg("Failed to save session")
	}
}

// SetState stores the anti-forgery token. A second login attempt from the
// same browser overwrites the previous token.
func (m *Manager) SetState(w http.ResponseWriter, r *http.Request, state string) {
	s := m.get(r)
	s.Values[keyState] = state
	m.save(w, r, s)
}

func (m *Manager) State(r *http.Request) string {
	state, _ := m.get(r).Values[keyState].(string)
	return state
}

func (m *Manager) SetIdentity(w http.ResponseWriter, r *http.Request, id Identity) {
	s := m.get(r)
	s.Values[keyUserID] = id.UserID
	s.Values[keyUsername] = id.Username
	s.Values[keyEmail] = id.Email
	s.Values[keyPicture] = id.Picture
	s.Values[keyAccessToken] = id.AccessToken
	s.Values[keyGoogleID] = id.GoogleID
	m.save(w, r, s)
}

func (m *Manager) Identity(r *http.Request) Identity {
	s := m.get(r)
	id := Identity{}
	id.UserID, _ = s.Values[keyUserID].(uint)
	id.Username, _ = s.Values[keyUsername].(string)
	id.Email, _ = s.Values[keyEmail].(string)
	id.Picture, _ = s.Values[keyPicture].(string)
	id.AccessToken, _ = s.Values[keyAccessToken].(string)
	id.GoogleID, _ = s.Values[keyGoogleID].(string)
	return id
}

// ClearIdentity removes the login record but keeps the session itself, so
// flashes queued during logout still render.
func (m *Manager) ClearIdentity(w http.ResponseWriter, r *http.Request) {
	s := m.get(r)
	for _, key := range []string{keyUserID, keyUsername, keyEmail, keyPicture, keyAccessToken, keyGoogleID} {
		delete(s.Values, key)
	}
	m.save(w, r, s)
}

// LoggedIn reports whether the session carries a login record.
func (m *Manager) LoggedIn(r *http.Request) bool {
	return m.Identity(r).Username != ""
}

// UserID returns the logged-in user's id, or 0 for anonymous.
func (m *Manager) UserID(r *http.Request) uint {
	return m.Identity(r).UserID
}

func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, message string) {
	s := m.get(r)
	s.AddFlash(message)
	m.save(w, r, s)
}

// Flashes drains and returns the queued transient messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) > 0 {
		m.save(w, r, s)
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
