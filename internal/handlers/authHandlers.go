package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"itemcatalog/internal/services"
	"itemcatalog/internal/session"
	"itemcatalog/internal/utils"
	"itemcatalog/internal/views"
)

type AuthHandler struct {
	authService services.AuthService
	sessions    *session.Manager
	views       *views.Renderer
}

func NewAuthHandler(authService services.AuthService, sessions *session.Manager, v *views.Renderer) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, views: v}
}

type loginPageData struct {
	ClientID string
	State    string
}

// LoginPage issues a fresh anti-forgery state and renders the sign-in
// challenge. Reloading the page overwrites any earlier state.
func (a *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	state, err := a.authService.BeginLogin()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.sessions.SetState(w, r, state)
	renderPage(a.views, a.sessions, w, r, "login", loginPageData{
		ClientID: a.authService.ClientID(),
		State:    state,
	})
}

// GConnect completes the Google sign-in handshake. It is called by the
// client-side sign-in script, so failures come back as JSON bodies with a
// 401/500 status instead of a redirect.
func (a *AuthHandler) GConnect(w http.ResponseWriter, r *http.Request) {
	code, err := io.ReadAll(r.Body)
	if err != nil {
		utils.SendJSONError(w, "Could not read authorization code", http.StatusBadRequest)
		return
	}

	result, err := a.authService.CompleteLogin(
		r.Context(),
		a.sessions.Identity(r),
		a.sessions.State(r),
		r.URL.Query().Get("state"),
		string(code),
	)
	if err != nil {
		a.sendLoginError(w, err)
		return
	}

	if result.AlreadyConnected {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Current user is already connected."})
		return
	}

	a.sessions.SetIdentity(w, r, result.Identity)
	a.sessions.Flash(w, r, fmt.Sprintf("You are now logged in as %s!", result.Identity.Username))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h2>Welcome, %s!</h2><img src=%q class=\"avatar\">", result.Identity.Username, result.Identity.Picture)
}

func (a *AuthHandler) sendLoginError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Login failed")
	switch {
	case errors.Is(err, services.ErrStateMismatch),
		errors.Is(err, services.ErrExchangeFailed),
		errors.Is(err, services.ErrTokenIdentityMismatch),
		errors.Is(err, services.ErrClientMismatch):
		utils.SendJSONError(w, err.Error(), http.StatusUnauthorized)
	default:
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

// Logout revokes the provider token and clears the session. The local
// session is cleared even when remote revocation fails.
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if !a.sessions.LoggedIn(r) {
		flashRedirect(a.sessions, w, r, "You were not logged in!", "/")
		return
	}

	if err := a.authService.Logout(r.Context(), a.sessions.Identity(r)); err != nil {
		log.Warn().Err(err).Msg("Remote disconnect failed, clearing local session anyway")
	}

	a.sessions.ClearIdentity(w, r)
	flashRedirect(a.sessions, w, r, "You have been successfully logged out!", "/")
}
