// ABOUTME: Per-namespace flyout manager: stores configs, answers lookups.
// ABOUTME: Registration validates, defaults, and resolves derivative fields.

package flyout

import (
	"fmt"
	"sort"
	"sync"
)

// Manager owns every flyout config registered under one namespace prefix.
// Managers are created by a registry and live as long as it does.
type Manager struct {
	prefix  string
	sources Sources

	mu      sync.RWMutex
	flyouts map[string]Config
}

func newManager(prefix string, sources Sources) *Manager {
	return &Manager{
		prefix:  prefix,
		sources: sources,
		flyouts: make(map[string]Config),
	}
}

// Prefix returns the namespace this manager owns.
func (m *Manager) Prefix() string { return m.prefix }

// Register stores the config under flyoutID, overwriting any earlier
// registration (last write wins). Derivative field types are rewritten to
// ajax_select with built-in callbacks, and missing width/capability fall
// back to their defaults. Missing load/save/delete callbacks are allowed;
// the matching operations fail later with ErrNoCallback.
func (m *Manager) Register(flyoutID string, cfg Config) error {
	if flyoutID == "" {
		return fmt.Errorf("%w: empty flyout id", ErrInvalidIdentifier)
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("register %s_%s: %w", m.prefix, flyoutID, err)
	}

	resolved := make([]Field, len(cfg.Fields))
	for i, f := range cfg.Fields {
		rf, err := resolveField(f, m.sources)
		if err != nil {
			return fmt.Errorf("register %s_%s: %w", m.prefix, flyoutID, err)
		}
		resolved[i] = rf
	}
	cfg.Fields = resolved

	if cfg.Width == "" {
		cfg.Width = WidthMedium
	}
	if cfg.Capability == "" {
		cfg.Capability = DefaultCapability
	}

	m.mu.Lock()
	m.flyouts[flyoutID] = cfg
	m.mu.Unlock()
	return nil
}

// Has reports whether flyoutID is registered.
func (m *Manager) Has(flyoutID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.flyouts[flyoutID]
	return ok
}

// Get returns the stored config for flyoutID.
func (m *Manager) Get(flyoutID string) (Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.flyouts[flyoutID]
	return cfg, ok
}

// IDs returns the registered flyout ids in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.flyouts))
	for id := range m.flyouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Button renders the trigger button for flyoutID. The data map becomes
// data-* attributes the client widget forwards to the load callback.
func (m *Manager) Button(flyoutID string, data map[string]string, args ButtonArgs) (string, error) {
	cfg, ok := m.Get(flyoutID)
	if !ok {
		return "", fmt.Errorf("%w: %s_%s", ErrUnknownFlyout, m.prefix, flyoutID)
	}
	if args.Text == "" {
		args.Text = cfg.Title
	}
	return renderButton(m.prefix+"_"+flyoutID, cfg, data, args), nil
}

// Link renders the trigger link for flyoutID. Text must be non-empty.
func (m *Manager) Link(flyoutID, text string, data map[string]string, args LinkArgs) (string, error) {
	cfg, ok := m.Get(flyoutID)
	if !ok {
		return "", fmt.Errorf("%w: %s_%s", ErrUnknownFlyout, m.prefix, flyoutID)
	}
	if text == "" {
		return "", fmt.Errorf("link for %s_%s: empty text", m.prefix, flyoutID)
	}
	return renderLink(m.prefix+"_"+flyoutID, cfg, text, data, args), nil
}
