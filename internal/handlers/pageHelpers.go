package handlers

import (
	"errors"
	"net/http"

	"itemcatalog/internal/services"
	"itemcatalog/internal/session"
	"itemcatalog/internal/views"
)

// renderPage wraps the payload with the session's flashes and login state
// and renders the named template.
func renderPage(v *views.Renderer, sm *session.Manager, w http.ResponseWriter, r *http.Request, name string, data any) {
	id := sm.Identity(r)
	v.Render(w, name, views.Page{
		Flashes:  sm.Flashes(w, r),
		LoggedIn: id.Username != "",
		Username: id.Username,
		Picture:  id.Picture,
		Data:     data,
	})
}

func flashRedirect(sm *session.Manager, w http.ResponseWriter, r *http.Request, message, target string) {
	sm.Flash(w, r, message)
	http.Redirect(w, r, target, http.StatusFound)
}

// requireLogin redirects anonymous visitors to the login page. Returns
// false when the caller should stop handling the request.
func requireLogin(sm *session.Manager, w http.ResponseWriter, r *http.Request) bool {
	if sm.LoggedIn(r) {
		return true
	}
	flashRedirect(sm, w, r, "Please log in to continue.", "/login/")
	return false
}

// flashCatalogError recovers a catalog service error into a transient
// message plus a redirect to a safe page. formPath is where duplicate-name
// failures send the user back to.
func flashCatalogError(sm *session.Manager, w http.ResponseWriter, r *http.Request, err error, formPath string) {
	switch {
	case errors.Is(err, services.ErrEmptyName):
		flashRedirect(sm, w, r, "The field cannot be empty.", "/")
	case errors.Is(err, services.ErrDuplicateName):
		flashRedirect(sm, w, r, "Entered name already exists.", formPath)
	case errors.Is(err, services.ErrForbidden):
		flashRedirect(sm, w, r, "Not authorised to access this page.", "/")
	case errors.Is(err, services.ErrNotFound):
		flashRedirect(sm, w, r, "Unable to process request!", "/")
	default:
		flashRedirect(sm, w, r, "We are unable to process your request right now.", "/")
	}
}
