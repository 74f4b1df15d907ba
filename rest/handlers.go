// ABOUTME: REST handlers bridging registered flyouts to the client widget.
// ABOUTME: Serves load/save/delete plus the search endpoint in Select2 payload shape.

package rest

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/2389/flyout"
	"github.com/go-chi/chi/v5"
)

// Handlers exposes every flyout registered in one registry over HTTP. The
// route parameter is the composite id, so one mount serves all namespaces.
type Handlers struct {
	registry *flyout.Registry

	// Authorize gates each request against the flyout's capability. Nil
	// means allow; hosts plug in their own user model here.
	Authorize func(r *http.Request, capability string) bool
}

// NewHandlers creates handlers over the given registry.
func NewHandlers(registry *flyout.Registry) *Handlers {
	return &Handlers{registry: registry}
}

// RegisterRoutes mounts the flyout endpoints on the router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/flyouts/{flyout}", func(r chi.Router) {
		r.Get("/", h.Load)
		r.Post("/", h.Save)
		r.Delete("/", h.Delete)
		r.Get("/search", h.Search)
	})
}

// resolve maps the composite route parameter to the stored config, writing
// the error response itself on any miss.
func (h *Handlers) resolve(w http.ResponseWriter, r *http.Request) (flyout.Config, bool) {
	compositeID := chi.URLParam(r, "flyout")

	ident, err := flyout.ParseIdentifier(compositeID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrInvalidRequest, "malformed flyout id: "+compositeID)
		return flyout.Config{}, false
	}
	if !h.registry.Has(ident.Prefix) {
		WriteError(w, http.StatusNotFound, ErrNotFound, "unknown flyout: "+compositeID)
		return flyout.Config{}, false
	}
	cfg, ok := h.registry.Manager(ident.Prefix).Get(ident.FlyoutID)
	if !ok {
		WriteError(w, http.StatusNotFound, ErrNotFound, "unknown flyout: "+compositeID)
		return flyout.Config{}, false
	}
	if h.Authorize != nil && !h.Authorize(r, cfg.Capability) {
		WriteError(w, http.StatusForbidden, ErrForbidden, "capability "+cfg.Capability+" required")
		return flyout.Config{}, false
	}
	return cfg, true
}

// Load hydrates the flyout form for one entity via the load callback.
func (h *Handlers) Load(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w, r)
	if !ok {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteErrorWithField(w, http.StatusBadRequest, ErrMissingField, "entity id is required", "id")
		return
	}
	if cfg.Load == nil {
		WriteError(w, http.StatusNotImplemented, ErrNotImplemented, "flyout has no load callback")
		return
	}

	data, err := cfg.Load(r.Context(), id)
	if err != nil {
		log.Printf("flyout %s: load %q: %v", chi.URLParam(r, "flyout"), id, err)
		WriteError(w, http.StatusBadGateway, ErrCallbackFailed, "load callback failed")
		return
	}

	writeJSON(w, map[string]any{"id": id, "data": data})
}

type saveRequest struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// Save persists the submitted form data via the save callback. String values
// pass through each field's sanitize callback before the host sees them.
func (h *Handlers) Save(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrInvalidRequest, "request body is not valid JSON")
		return
	}
	if req.ID == "" {
		WriteErrorWithField(w, http.StatusBadRequest, ErrMissingField, "entity id is required", "id")
		return
	}
	if cfg.Save == nil {
		WriteError(w, http.StatusNotImplemented, ErrNotImplemented, "flyout has no save callback")
		return
	}

	sanitize(cfg, req.Data)

	if err := cfg.Save(r.Context(), req.ID, req.Data); err != nil {
		log.Printf("flyout %s: save %q: %v", chi.URLParam(r, "flyout"), req.ID, err)
		WriteError(w, http.StatusBadGateway, ErrCallbackFailed, "save callback failed")
		return
	}

	writeJSON(w, map[string]any{"id": req.ID, "saved": true})
}

// Delete removes one entity via the delete callback.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w, r)
	if !ok {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteErrorWithField(w, http.StatusBadRequest, ErrMissingField, "entity id is required", "id")
		return
	}
	if cfg.Delete == nil {
		WriteError(w, http.StatusNotImplemented, ErrNotImplemented, "flyout has no delete callback")
		return
	}

	if err := cfg.Delete(r.Context(), id); err != nil {
		log.Printf("flyout %s: delete %q: %v", chi.URLParam(r, "flyout"), id, err)
		WriteError(w, http.StatusBadGateway, ErrCallbackFailed, "delete callback failed")
		return
	}

	writeJSON(w, map[string]any{"id": id, "deleted": true})
}

type searchResponse struct {
	Results []flyout.Option `json:"results"`
}

// Search serves one ajax select field in either mode: ?q= runs a live
// search, ?ids= hydrates previously saved values. The response is the
// ordered {results:[{id,text}]} shape the widget consumes.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w, r)
	if !ok {
		return
	}

	fieldKey := r.URL.Query().Get("field")
	if fieldKey == "" {
		WriteErrorWithField(w, http.StatusBadRequest, ErrMissingField, "field key is required", "field")
		return
	}
	f, ok := cfg.Field(fieldKey)
	if !ok {
		WriteErrorWithField(w, http.StatusNotFound, ErrNotFound, "unknown field: "+fieldKey, "field")
		return
	}
	ajax, ok := f.(flyout.AjaxSelectField)
	if !ok {
		WriteErrorWithField(w, http.StatusBadRequest, ErrInvalidRequest, "field is not searchable: "+fieldKey, "field")
		return
	}

	var (
		opts []flyout.Option
		err  error
	)
	if raw := r.URL.Query().Get("ids"); raw != "" {
		opts, err = flyout.Hydrate(r.Context(), ajax.Search, splitIDs(raw), ajax.Tags)
	} else {
		opts, err = flyout.Search(r.Context(), ajax.Search, r.URL.Query().Get("q"), ajax.PageSize)
	}
	if err != nil {
		log.Printf("flyout %s: search field %q: %v", chi.URLParam(r, "flyout"), fieldKey, err)
		WriteError(w, http.StatusBadGateway, ErrCallbackFailed, "search callback failed")
		return
	}
	if opts == nil {
		opts = []flyout.Option{}
	}

	writeJSON(w, searchResponse{Results: opts})
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func sanitize(cfg flyout.Config, data map[string]any) {
	for key, value := range data {
		s, isString := value.(string)
		if !isString {
			continue
		}
		if f, ok := cfg.Field(key); ok {
			if base := flyout.BaseOf(f); base.Sanitize != nil {
				data[key] = base.Sanitize(s)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("flyout: encode response: %v", err)
	}
}
