// ABOUTME: Registry mapping namespace prefixes to their managers.
// ABOUTME: Explicitly constructed; a package-level default backs the façade.

package flyout

import "sync"

// Registry maps each namespace prefix to the manager owning it. Construct
// one per composition root with NewRegistry; tests get clean isolation by
// building their own. Get-or-create is atomic, so concurrent callers never
// observe two managers for the same prefix.
type Registry struct {
	mu       sync.Mutex
	managers map[string]*Manager
	sources  Sources
}

// RegistryOption configures a registry at construction.
type RegistryOption func(*Registry)

// WithSources wires the entity sources that back derivative field types.
// Managers created by this registry hand them to their built-in callbacks.
func WithSources(s Sources) RegistryOption {
	return func(r *Registry) { r.sources = s }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{managers: make(map[string]*Manager)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Manager returns the manager for prefix, creating it on first reference.
// The same prefix always yields the same instance.
func (r *Registry) Manager(prefix string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[prefix]
	if !ok {
		m = newManager(prefix, r.sources)
		r.managers[prefix] = m
	}
	return m
}

// Has reports whether a manager exists for prefix without creating one.
func (r *Registry) Has(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.managers[prefix]
	return ok
}

// Prefixes returns the prefixes that currently have managers.
func (r *Registry) Prefixes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefixes := make([]string, 0, len(r.managers))
	for p := range r.managers {
		prefixes = append(prefixes, p)
	}
	return prefixes
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// convenience functions.
func Default() *Registry {
	return defaultRegistry
}
