// ABOUTME: Tests for the demo admin page.
// ABOUTME: Verifies registered flyouts appear with working trigger markup.

package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389/flyout"
	"github.com/go-chi/chi/v5"
)

func TestIndex_ListsRegisteredFlyouts(t *testing.T) {
	reg := flyout.NewRegistry()
	err := reg.Manager("shop").Register("edit_product", flyout.Config{
		Title:  "Edit Product",
		Fields: []flyout.Field{flyout.TextField{Base: flyout.Base{Name: "name"}}},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	r := chi.NewRouter()
	NewHandlers(reg).RegisterRoutes(r)

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"shop_edit_product",
		"Edit Product",
		`data-flyout="shop_edit_product"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndex_EmptyRegistry(t *testing.T) {
	r := chi.NewRouter()
	NewHandlers(flyout.NewRegistry()).RegisterRoutes(r)

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}
