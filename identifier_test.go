// ABOUTME: Tests for composite identifier parsing.
// ABOUTME: Covers first-underscore splitting and malformed id rejection.

package flyout

import (
	"errors"
	"testing"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPrefix string
		wantID     string
	}{
		{
			name:       "simple id",
			input:      "shop_edit",
			wantPrefix: "shop",
			wantID:     "edit",
		},
		{
			name:       "remainder keeps later underscores",
			input:      "shop_edit_product",
			wantPrefix: "shop",
			wantID:     "edit_product",
		},
		{
			name:       "many underscores",
			input:      "crm_edit_customer_billing_address",
			wantPrefix: "crm",
			wantID:     "edit_customer_billing_address",
		},
		{
			name:       "single character parts",
			input:      "a_b",
			wantPrefix: "a",
			wantID:     "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := ParseIdentifier(tt.input)
			if err != nil {
				t.Fatalf("ParseIdentifier(%q) error = %v", tt.input, err)
			}
			if ident.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", ident.Prefix, tt.wantPrefix)
			}
			if ident.FlyoutID != tt.wantID {
				t.Errorf("FlyoutID = %q, want %q", ident.FlyoutID, tt.wantID)
			}
		})
	}
}

func TestParseIdentifier_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no underscore", input: "shop"},
		{name: "empty string", input: ""},
		{name: "empty prefix", input: "_edit"},
		{name: "empty flyout id", input: "shop_"},
		{name: "only underscore", input: "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIdentifier(tt.input)
			if err == nil {
				t.Fatalf("ParseIdentifier(%q) expected error, got nil", tt.input)
			}
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("error = %v, want ErrInvalidIdentifier", err)
			}
		})
	}
}

func TestIdentifier_String(t *testing.T) {
	ident := Identifier{Prefix: "shop", FlyoutID: "edit_product"}
	if got := ident.String(); got != "shop_edit_product" {
		t.Errorf("String() = %q, want %q", got, "shop_edit_product")
	}
}
