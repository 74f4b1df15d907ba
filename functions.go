// ABOUTME: Package-level convenience façade over the default registry.
// ABOUTME: Failures are logged with the offending id and become safe zero values.

package flyout

import (
	"fmt"
	"io"
	"log"
)

// Register parses the composite id and stores the config with the owning
// manager on the default registry, creating the manager on first use. On
// failure it logs the reason and returns nil; errors never propagate, so a
// bad registration cannot take down the hosting page.
func Register(compositeID string, cfg Config) *Manager {
	ident, err := ParseIdentifier(compositeID)
	if err != nil {
		log.Printf("flyout: register %q: %v", compositeID, err)
		return nil
	}
	m := defaultRegistry.Manager(ident.Prefix)
	if err := m.Register(ident.FlyoutID, cfg); err != nil {
		log.Printf("flyout: register %q: %v", compositeID, err)
		return nil
	}
	return m
}

// Button renders the trigger button for a composite id. On any failure it
// logs and returns an empty string.
func Button(compositeID string, data map[string]string, args ButtonArgs) string {
	ident, err := ParseIdentifier(compositeID)
	if err != nil {
		log.Printf("flyout: button %q: %v", compositeID, err)
		return ""
	}
	markup, err := defaultRegistry.Manager(ident.Prefix).Button(ident.FlyoutID, data, args)
	if err != nil {
		log.Printf("flyout: button %q: %v", compositeID, err)
		return ""
	}
	return markup
}

// Link renders the trigger link for a composite id. On any failure it logs
// and returns an empty string.
func Link(compositeID, text string, data map[string]string, args LinkArgs) string {
	ident, err := ParseIdentifier(compositeID)
	if err != nil {
		log.Printf("flyout: link %q: %v", compositeID, err)
		return ""
	}
	markup, err := defaultRegistry.Manager(ident.Prefix).Link(ident.FlyoutID, text, data, args)
	if err != nil {
		log.Printf("flyout: link %q: %v", compositeID, err)
		return ""
	}
	return markup
}

// RenderButton writes the trigger button straight to w. Failures degrade to
// writing nothing.
func RenderButton(w io.Writer, compositeID string, data map[string]string, args ButtonArgs) {
	if markup := Button(compositeID, data, args); markup != "" {
		fmt.Fprint(w, markup)
	}
}

// RenderLink writes the trigger link straight to w. Failures degrade to
// writing nothing.
func RenderLink(w io.Writer, compositeID, text string, data map[string]string, args LinkArgs) {
	if markup := Link(compositeID, text, data, args); markup != "" {
		fmt.Fprint(w, markup)
	}
}
