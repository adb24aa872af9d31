package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager([]byte("0123456789abcdef0123456789abcdef"))
}

// roundTrip applies the cookies written to w onto a fresh request, the way
// a browser would on the next page load. When the same cookie was written
// more than once only the last value survives, matching browser behaviour.
func roundTrip(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	latest := map[string]*http.Cookie{}
	names := []string{}
	for _, c := range w.Result().Cookies() {
		if _, seen := latest[c.Name]; !seen {
			names = append(names, c.Name)
		}
		latest[c.Name] = c
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, name := range names {
		r.AddCookie(latest[name])
	}
	return r
}

func TestStateRoundTrip(t *testing.T) {
	m := newTestManager()

	w := httptest.NewRecorder()
	m.SetState(w, httptest.NewRequest(http.MethodGet, "/login/", nil), "STATEONE")

	next := roundTrip(t, w)
	assert.Equal(t, "STATEONE", m.State(next))
}

func TestStateOverwrite(t *testing.T) {
	m := newTestManager()

	w := httptest.NewRecorder()
	m.SetState(w, httptest.NewRequest(http.MethodGet, "/login/", nil), "STATEONE")

	// A second visit to the login page replaces the stored token, so a
	// callback still carrying the first one no longer matches.
	w2 := httptest.NewRecorder()
	m.SetState(w2, roundTrip(t, w), "STATETWO")

	next := roundTrip(t, w2)
	assert.Equal(t, "STATETWO", m.State(next))
}

func TestIdentityRoundTrip(t *testing.T) {
	m := newTestManager()

	id := Identity{
		UserID:      7,
		Username:    "Carol",
		Email:       "carol@example.com",
		Picture:     "https://example.com/c.png",
		AccessToken: "token-abc",
		GoogleID:    "google-42",
	}

	w := httptest.NewRecorder()
	m.SetIdentity(w, httptest.NewRequest(http.MethodGet, "/", nil), id)

	next := roundTrip(t, w)
	assert.Equal(t, id, m.Identity(next))
	assert.True(t, m.LoggedIn(next))
	assert.EqualValues(t, 7, m.UserID(next))
}

func TestClearIdentity(t *testing.T) {
	m := newTestManager()

	w := httptest.NewRecorder()
	m.SetIdentity(w, httptest.NewRequest(http.MethodGet, "/", nil), Identity{
		UserID:   7,
		Username: "Carol",
	})

	w2 := httptest.NewRecorder()
	m.ClearIdentity(w2, roundTrip(t, w))

	next := roundTrip(t, w2)
	assert.False(t, m.LoggedIn(next))
	assert.Zero(t, m.UserID(next))
}

func TestAnonymousSession(t *testing.T) {
	m := newTestManager()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.False(t, m.LoggedIn(r))
	assert.Zero(t, m.UserID(r))
	assert.Empty(t, m.State(r))
}

func TestFlashesDrain(t *testing.T) {
	m := newTestManager()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	m.Flash(w, r, "New Category Snow created!")
	m.Flash(w, r, "Item deleted!")

	next := roundTrip(t, w)
	w2 := httptest.NewRecorder()
	messages := m.Flashes(w2, next)
	require.Equal(t, []string{"New Category Snow created!", "Item deleted!"}, messages)

	// Reading drained the queue; the next page load sees nothing.
	after := roundTrip(t, w2)
	assert.Empty(t, m.Flashes(httptest.NewRecorder(), after))
}
