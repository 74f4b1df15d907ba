// ABOUTME: Sentinel errors for the flyout core.
// ABOUTME: Callers match on these with errors.Is after unwrapping.

package flyout

import "errors"

var (
	// ErrInvalidIdentifier indicates a composite id that could not be split
	// into a namespace prefix and a flyout id.
	ErrInvalidIdentifier = errors.New("invalid flyout identifier")

	// ErrUnknownFlyout indicates a lookup for a flyout id that was never
	// registered with the manager.
	ErrUnknownFlyout = errors.New("unknown flyout")

	// ErrMissingFields indicates a registration attempt with an empty field set.
	ErrMissingFields = errors.New("flyout config has no fields")

	// ErrNoCallback indicates an operation that requires a host-supplied
	// callback (load, save, delete, search) which was not provided.
	ErrNoCallback = errors.New("callback not configured")
)
