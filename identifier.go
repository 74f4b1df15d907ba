// ABOUTME: Composite identifier parsing for flyout addressing.
// ABOUTME: Splits "prefix_name" into a namespace prefix and a local flyout id.

package flyout

import (
	"fmt"
	"strings"
)

// Identifier is a parsed composite flyout id. The prefix selects the owning
// manager; the flyout id addresses one panel within that namespace.
type Identifier struct {
	Prefix   string
	FlyoutID string
}

// ParseIdentifier splits a composite id at the first underscore. The
// remainder stays joined, so "shop_edit_product" parses to prefix "shop" and
// flyout id "edit_product". No trimming or case folding is applied.
func ParseIdentifier(id string) (Identifier, error) {
	prefix, rest, found := strings.Cut(id, "_")
	if !found {
		return Identifier{}, fmt.Errorf("%w: %q has no underscore", ErrInvalidIdentifier, id)
	}
	if prefix == "" || rest == "" {
		return Identifier{}, fmt.Errorf("%w: %q has an empty prefix or flyout id", ErrInvalidIdentifier, id)
	}
	return Identifier{Prefix: prefix, FlyoutID: rest}, nil
}

// String reassembles the composite form.
func (i Identifier) String() string {
	return i.Prefix + "_" + i.FlyoutID
}
