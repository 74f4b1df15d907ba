// ABOUTME: Tests for trigger button and link markup generation.
// ABOUTME: Checks data attributes, escaping, and deterministic attribute order.

package flyout

import (
	"strings"
	"testing"
)

func setupRenderManager(t *testing.T) *Manager {
	t.Helper()
	m := NewRegistry().Manager("shop")
	err := m.Register("edit_product", Config{
		Title:  "Edit Product",
		Width:  WidthLarge,
		Fields: []Field{textField("name")},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return m
}

func TestManager_Button(t *testing.T) {
	m := setupRenderManager(t)

	markup, err := m.Button("edit_product", map[string]string{"product-id": "42"}, ButtonArgs{})
	if err != nil {
		t.Fatalf("Button() error = %v", err)
	}

	wants := []string{
		`<button type="button"`,
		`class="flyout-trigger"`,
		`data-flyout="shop_edit_product"`,
		`data-flyout-width="large"`,
		`data-product-id="42"`,
		`>Edit Product</button>`,
	}
	for _, want := range wants {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestManager_ButtonArgs(t *testing.T) {
	m := setupRenderManager(t)

	markup, err := m.Button("edit_product", nil, ButtonArgs{
		Text:  "Open",
		Class: "btn-primary",
		Icon:  "icon-edit",
		Attrs: map[string]string{"aria-label": "Open editor"},
	})
	if err != nil {
		t.Fatalf("Button() error = %v", err)
	}

	wants := []string{
		`class="flyout-trigger btn-primary"`,
		`<span class="flyout-icon icon-edit" aria-hidden="true"></span>`,
		`aria-label="Open editor"`,
		`>Open</button>`,
	}
	for _, want := range wants {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestManager_ButtonEscapesValues(t *testing.T) {
	m := setupRenderManager(t)

	markup, err := m.Button("edit_product", map[string]string{"note": `<script>"x"</script>`}, ButtonArgs{
		Text: `Edit <b>now</b>`,
	})
	if err != nil {
		t.Fatalf("Button() error = %v", err)
	}

	if strings.Contains(markup, "<script>") {
		t.Errorf("markup contains unescaped script tag:\n%s", markup)
	}
	if strings.Contains(markup, "<b>") {
		t.Errorf("markup contains unescaped text:\n%s", markup)
	}
}

func TestManager_ButtonDeterministicDataOrder(t *testing.T) {
	m := setupRenderManager(t)

	data := map[string]string{"b": "2", "a": "1", "c": "3"}
	first, err := m.Button("edit_product", data, ButtonArgs{})
	if err != nil {
		t.Fatalf("Button() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		again, _ := m.Button("edit_product", data, ButtonArgs{})
		if again != first {
			t.Fatal("markup differs between renders of the same input")
		}
	}
	if !strings.Contains(first, `data-a="1" data-b="2" data-c="3"`) {
		t.Errorf("data attributes not in sorted order:\n%s", first)
	}
}

func TestManager_Link(t *testing.T) {
	m := setupRenderManager(t)

	markup, err := m.Link("edit_product", "Edit this product", map[string]string{"product-id": "7"}, LinkArgs{Class: "row-action"})
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	wants := []string{
		`<a href="#"`,
		`class="flyout-trigger row-action"`,
		`data-flyout="shop_edit_product"`,
		`data-product-id="7"`,
		`>Edit this product</a>`,
	}
	for _, want := range wants {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q:\n%s", want, markup)
		}
	}
}
