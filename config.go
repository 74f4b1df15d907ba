// ABOUTME: Flyout configuration model: panel settings, tabs, actions, callbacks.
// ABOUTME: Validated and defaulted by the manager at registration time.

package flyout

import (
	"context"
	"fmt"
)

// Width selects how much of the viewport the panel covers.
type Width string

const (
	WidthSmall  Width = "small"
	WidthMedium Width = "medium"
	WidthLarge  Width = "large"
	WidthFull   Width = "full"
)

// DefaultCapability gates flyout operations when a config names none.
const DefaultCapability = "manage_options"

// LoadFunc hydrates the form for one entity.
type LoadFunc func(ctx context.Context, id string) (map[string]any, error)

// SaveFunc persists the submitted form data for one entity.
type SaveFunc func(ctx context.Context, id string, data map[string]any) error

// DeleteFunc removes one entity.
type DeleteFunc func(ctx context.Context, id string) error

// Tab groups a subset of the field keys under one label.
type Tab struct {
	ID     string
	Label  string
	Fields []string
}

// Action is an extra footer button the panel offers besides save.
type Action struct {
	Name    string
	Label   string
	Confirm bool
}

// Config describes one flyout panel. Fields order is display order; keys
// come from each field's Name. Load, Save, and Delete may be nil, in which
// case the matching operation fails with ErrNoCallback when invoked.
type Config struct {
	Title      string
	Width      Width
	Tabs       []Tab
	Fields     []Field
	Actions    []Action
	Capability string
	AdminPages []string
	Load       LoadFunc
	Save       SaveFunc
	Delete     DeleteFunc
}

// Field returns the field registered under key.
func (c Config) Field(key string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Key() == key {
			return f, true
		}
	}
	return nil, false
}

// validate checks the parts of a config that must hold before storage;
// defaulting happens separately so the caller's value stays untouched.
func (c Config) validate() error {
	if len(c.Fields) == 0 {
		return ErrMissingFields
	}
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if seen[f.Key()] {
			return fmt.Errorf("duplicate field %q", f.Key())
		}
		seen[f.Key()] = true
	}
	switch c.Width {
	case "", WidthSmall, WidthMedium, WidthLarge, WidthFull:
	default:
		return fmt.Errorf("unknown width %q", c.Width)
	}
	for _, tab := range c.Tabs {
		for _, key := range tab.Fields {
			if !seen[key] {
				return fmt.Errorf("tab %q references unknown field %q", tab.ID, key)
			}
		}
	}
	return nil
}
