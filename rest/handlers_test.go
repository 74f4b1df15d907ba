// ABOUTME: Tests for the flyout REST handlers.
// ABOUTME: Covers load/save/delete dispatch, search payload shape, and error envelopes.

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389/flyout"
	"github.com/go-chi/chi/v5"
)

type testBackend struct {
	entities map[string]map[string]any
	deleted  []string
}

func newTestRouter(t *testing.T, backend *testBackend) http.Handler {
	t.Helper()

	reg := flyout.NewRegistry()
	err := reg.Manager("shop").Register("edit_product", flyout.Config{
		Title: "Edit Product",
		Fields: []flyout.Field{
			flyout.TextField{Base: flyout.Base{
				Name:     "name",
				Label:    "Name",
				Sanitize: strings.TrimSpace,
			}},
			flyout.AjaxSelectField{
				Base:     flyout.Base{Name: "related", Label: "Related"},
				Search:   productSearch,
				PageSize: 2,
			},
			flyout.AjaxSelectField{
				Base:   flyout.Base{Name: "tags", Label: "Tags"},
				Search: productSearch,
				Tags:   true,
			},
		},
		Load: func(ctx context.Context, id string) (map[string]any, error) {
			data, ok := backend.entities[id]
			if !ok {
				return nil, fmt.Errorf("no entity %q", id)
			}
			return data, nil
		},
		Save: func(ctx context.Context, id string, data map[string]any) error {
			backend.entities[id] = data
			return nil
		},
		Delete: func(ctx context.Context, id string) error {
			backend.deleted = append(backend.deleted, id)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// A flyout with no callbacks at all.
	err = reg.Manager("shop").Register("view_only", flyout.Config{
		Fields: []flyout.Field{flyout.TextField{Base: flyout.Base{Name: "name"}}},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	r := chi.NewRouter()
	NewHandlers(reg).RegisterRoutes(r)
	return r
}

func productSearch(ctx context.Context, query string, ids []string) ([]flyout.Option, error) {
	catalog := []flyout.Option{
		{Value: "1", Label: "Anvil"},
		{Value: "2", Label: "Anchor"},
		{Value: "3", Label: "Axe"},
	}
	if len(ids) > 0 {
		var opts []flyout.Option
		for _, id := range ids {
			for _, o := range catalog {
				if o.Value == id {
					opts = append(opts, o)
				}
			}
		}
		return opts, nil
	}
	var opts []flyout.Option
	for _, o := range catalog {
		if strings.HasPrefix(strings.ToLower(o.Label), strings.ToLower(query)) {
			opts = append(opts, o)
		}
	}
	return opts, nil
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body: %s", err, rr.Body.String())
	}
	return resp
}

func TestLoad(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{
		"42": {"name": "Anvil"},
	}}
	router := newTestRouter(t, backend)

	req := httptest.NewRequest("GET", "/flyouts/shop_edit_product?id=42", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp struct {
		ID   string         `json:"id"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if resp.Data["name"] != "Anvil" {
		t.Errorf("data.name = %v, want %q", resp.Data["name"], "Anvil")
	}
}

func TestLoad_Errors(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed composite id",
			path:       "/flyouts/noprefix?id=1",
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrInvalidRequest,
		},
		{
			name:       "unknown namespace",
			path:       "/flyouts/other_edit?id=1",
			wantStatus: http.StatusNotFound,
			wantCode:   ErrNotFound,
		},
		{
			name:       "unknown flyout id",
			path:       "/flyouts/shop_missing?id=1",
			wantStatus: http.StatusNotFound,
			wantCode:   ErrNotFound,
		},
		{
			name:       "missing entity id",
			path:       "/flyouts/shop_edit_product",
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrMissingField,
		},
		{
			name:       "no load callback",
			path:       "/flyouts/shop_view_only?id=1",
			wantStatus: http.StatusNotImplemented,
			wantCode:   ErrNotImplemented,
		},
		{
			name:       "load callback fails",
			path:       "/flyouts/shop_edit_product?id=missing",
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCallbackFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if resp := decodeError(t, rr); resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestSave_AppliesSanitizeCallbacks(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	body, _ := json.Marshal(map[string]any{
		"id":   "42",
		"data": map[string]any{"name": "  Anvil  "},
	})
	req := httptest.NewRequest("POST", "/flyouts/shop_edit_product", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rr.Code, rr.Body.String())
	}
	if got := backend.entities["42"]["name"]; got != "Anvil" {
		t.Errorf("saved name = %q, want sanitized %q", got, "Anvil")
	}
}

func TestSave_InvalidBody(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	req := httptest.NewRequest("POST", "/flyouts/shop_edit_product", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestDelete(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	req := httptest.NewRequest("DELETE", "/flyouts/shop_edit_product?id=42", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rr.Code, rr.Body.String())
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "42" {
		t.Errorf("deleted = %v, want [42]", backend.deleted)
	}
}

func TestSearch_SearchMode(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	req := httptest.NewRequest("GET", "/flyouts/shop_edit_product/search?field=related&q=an", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rr.Code, rr.Body.String())
	}
	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	// "an" matches Anvil and Anchor; the field's page size already caps at 2.
	want := []flyout.Option{{Value: "1", Label: "Anvil"}, {Value: "2", Label: "Anchor"}}
	if len(resp.Results) != len(want) {
		t.Fatalf("len(results) = %d, want %d: %v", len(resp.Results), len(want), resp.Results)
	}
	for i, o := range want {
		if resp.Results[i] != o {
			t.Errorf("results[%d] = %v, want %v", i, resp.Results[i], o)
		}
	}
}

func TestSearch_SelectTwoPayloadShape(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	req := httptest.NewRequest("GET", "/flyouts/shop_edit_product/search?field=related&q=anvil", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var raw map[string][]map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	results, ok := raw["results"]
	if !ok {
		t.Fatalf("payload missing results key: %s", rr.Body.String())
	}
	if len(results) != 1 || results[0]["id"] != "1" || results[0]["text"] != "Anvil" {
		t.Errorf("results = %v, want [{id:1 text:Anvil}]", results)
	}
}

func TestSearch_HydrationMode(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	req := httptest.NewRequest("GET", "/flyouts/shop_edit_product/search?field=related&ids=1,3,99", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	// 99 resolves to nothing and the field is not in tags mode.
	want := []flyout.Option{{Value: "1", Label: "Anvil"}, {Value: "3", Label: "Axe"}}
	if len(resp.Results) != len(want) {
		t.Fatalf("len(results) = %d, want %d: %v", len(resp.Results), len(want), resp.Results)
	}
}

func TestSearch_HydrationTagsMode(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	req := httptest.NewRequest("GET", "/flyouts/shop_edit_product/search?field=tags&ids=1,99", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	want := []flyout.Option{{Value: "1", Label: "Anvil"}, {Value: "99", Label: "99"}}
	if len(resp.Results) != len(want) {
		t.Fatalf("len(results) = %d, want %d: %v", len(resp.Results), len(want), resp.Results)
	}
	for i, o := range want {
		if resp.Results[i] != o {
			t.Errorf("results[%d] = %v, want %v", i, resp.Results[i], o)
		}
	}
}

func TestSearch_FieldErrors(t *testing.T) {
	backend := &testBackend{entities: map[string]map[string]any{}}
	router := newTestRouter(t, backend)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{
			name:       "missing field key",
			path:       "/flyouts/shop_edit_product/search?q=an",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			path:       "/flyouts/shop_edit_product/search?field=missing&q=an",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "field is not searchable",
			path:       "/flyouts/shop_edit_product/search?field=name&q=an",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthorize_DeniesWithoutCapability(t *testing.T) {
	reg := flyout.NewRegistry()
	err := reg.Manager("shop").Register("edit", flyout.Config{
		Capability: "edit_products",
		Fields:     []flyout.Field{flyout.TextField{Base: flyout.Base{Name: "name"}}},
		Load: func(ctx context.Context, id string) (map[string]any, error) {
			return map[string]any{}, nil
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	h := NewHandlers(reg)
	h.Authorize = func(r *http.Request, capability string) bool {
		return r.Header.Get("X-Role") == "admin" || capability == ""
	}

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	req := httptest.NewRequest("GET", "/flyouts/shop_edit?id=1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status without role = %d, want %d", rr.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest("GET", "/flyouts/shop_edit?id=1", nil)
	req.Header.Set("X-Role", "admin")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("status with role = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
}
