package views

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page is the envelope every template renders: the session's transient
// messages and login state plus the page-specific payload.
type Page struct {
	Flashes  []string
	LoggedIn bool
	Username string
	Picture  string
	Data     any
}

var pageNames = []string{
	"index",
	"login",
	"new-category",
	"new-item",
	"new-item-in-category",
	"view-item",
	"update-item",
	"delete-item",
	"items",
	"edit-category",
	"delete-category",
}

// Renderer holds the parsed page templates, each paired with the shared
// layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() *Renderer {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.ParseFS(
			templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		))
	}
	return &Renderer{pages: pages}
}

func (r *Renderer) Render(w http.ResponseWriter, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Error().Str("template", name).Msg("Unknown template requested")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", page); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render template")
	}
}
