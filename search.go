// ABOUTME: Unified search callback contract and the adapter around it.
// ABOUTME: One host callback serves both live search and saved-value hydration.

package flyout

import (
	"context"
	"fmt"
)

// DefaultPageSize caps search-mode results when a field sets no page size.
const DefaultPageSize = 20

// Option is one value/label pair in a dropdown. Slice order is display order.
type Option struct {
	Value string `json:"id"`
	Label string `json:"text"`
}

// SearchCallback is the unified contract behind ajax select fields. Exactly
// one of query/ids is populated per call: a non-empty query means search mode
// (return up to a page of matches), a non-empty ids slice means hydration
// mode (return a label for each id the host can still resolve; unresolvable
// ids are simply omitted).
type SearchCallback func(ctx context.Context, query string, ids []string) ([]Option, error)

// Search runs the callback in search mode and truncates the result to limit.
// A non-positive limit falls back to DefaultPageSize.
func Search(ctx context.Context, cb SearchCallback, query string, limit int) ([]Option, error) {
	if cb == nil {
		return nil, fmt.Errorf("search: %w", ErrNoCallback)
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	opts, err := cb(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(opts) > limit {
		opts = opts[:limit]
	}
	return opts, nil
}

// Hydrate runs the callback in hydration mode. Partial results are expected:
// ids the host cannot resolve are dropped. With tags enabled, unresolved ids
// are round-tripped as identity options (the id doubles as its own label)
// appended in request order, since a free-text tag may not map to any stored
// entity.
func Hydrate(ctx context.Context, cb SearchCallback, ids []string, tags bool) ([]Option, error) {
	if cb == nil {
		return nil, fmt.Errorf("hydrate: %w", ErrNoCallback)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	opts, err := cb(ctx, "", ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate %d ids: %w", len(ids), err)
	}
	if !tags {
		return opts, nil
	}
	resolved := make(map[string]bool, len(opts))
	for _, o := range opts {
		resolved[o.Value] = true
	}
	for _, id := range ids {
		if !resolved[id] {
			opts = append(opts, Option{Value: id, Label: id})
		}
	}
	return opts, nil
}

// EntitySource is the lookup surface behind the built-in search callbacks
// that derivative field types (post, taxonomy, user) resolve to. The subtype
// narrows the search within a source: a post type, a taxonomy name, or a user
// role. An empty subtype matches everything.
type EntitySource interface {
	Search(ctx context.Context, subtype, query string, limit int) ([]Option, error)
	Resolve(ctx context.Context, subtype string, ids []string) ([]Option, error)
}

// Sources groups the entity sources a registry hands to its managers. Any
// field may be nil; a derivative field whose source is missing fails at
// callback invocation, not at registration.
type Sources struct {
	Posts EntitySource
	Terms EntitySource
	Users EntitySource
}

// EntitySearch builds the unified callback for one entity source. It is the
// named form of the built-in callbacks substituted during derivative field
// resolution, kept independent so hosts can reuse it for plain ajax fields.
func EntitySearch(src EntitySource, subtype string) SearchCallback {
	return func(ctx context.Context, query string, ids []string) ([]Option, error) {
		if src == nil {
			return nil, fmt.Errorf("entity search: no source configured: %w", ErrNoCallback)
		}
		if len(ids) > 0 {
			return src.Resolve(ctx, subtype, ids)
		}
		return src.Search(ctx, subtype, query, DefaultPageSize)
	}
}
