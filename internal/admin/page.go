// ABOUTME: Demo admin page listing registered flyouts with live trigger buttons.
// ABOUTME: Embeds its template and renders trigger markup through the core library.

package admin

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"sort"

	"github.com/2389/flyout"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Handlers serves the demo admin UI for one registry.
type Handlers struct {
	registry *flyout.Registry
}

// NewHandlers creates the demo page handlers.
func NewHandlers(registry *flyout.Registry) *Handlers {
	return &Handlers{registry: registry}
}

// RegisterRoutes mounts the demo page.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
}

type flyoutRow struct {
	CompositeID string
	Title       string
	Width       flyout.Width
	Button      template.HTML
}

type indexData struct {
	Flyouts []flyoutRow
}

// Index lists every registered flyout with a rendered trigger button.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	var rows []flyoutRow

	prefixes := h.registry.Prefixes()
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		m := h.registry.Manager(prefix)
		for _, id := range m.IDs() {
			cfg, ok := m.Get(id)
			if !ok {
				continue
			}
			markup, err := m.Button(id, map[string]string{"entity-id": "demo"}, flyout.ButtonArgs{})
			if err != nil {
				log.Printf("admin: render button for %s_%s: %v", prefix, id, err)
				continue
			}
			rows = append(rows, flyoutRow{
				CompositeID: prefix + "_" + id,
				Title:       cfg.Title,
				Width:       cfg.Width,
				Button:      template.HTML(markup),
			})
		}
	}

	w.Header().Set("Content-Type", "text/html")
	if err := indexTmpl.Execute(w, indexData{Flyouts: rows}); err != nil {
		log.Printf("admin: render index: %v", err)
	}
}
