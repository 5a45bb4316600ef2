package filter

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/rickdex/rickmorty"
)

// Preset is a named, described filter expression
type Preset struct {
	Name        string
	Expression  string
	Description string
}

// Manager holds named filters compiled from presets
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	presets  map[string]Preset
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		filters:  make(map[string]CompiledFilter),
		presets:  make(map[string]Preset),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	return m.RegisterPreset(Preset{Name: name, Expression: expression})
}

// RegisterPreset compiles and registers a preset
func (m *Manager) RegisterPreset(preset Preset) error {
	filter, err := m.compiler.Compile(preset.Expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", preset.Name, err)
	}

	m.mu.Lock()
	m.filters[preset.Name] = filter
	m.presets[preset.Name] = preset
	m.mu.Unlock()

	return nil
}

// RegisterPresets registers multiple presets at once. Nothing is registered if any fails to compile.
func (m *Manager) RegisterPresets(presets []Preset) error {
	compiled := make(map[string]CompiledFilter, len(presets))

	for _, preset := range presets {
		filter, err := m.compiler.Compile(preset.Expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", preset.Name, err)
		}
		compiled[preset.Name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	for _, preset := range presets {
		m.presets[preset.Name] = preset
	}
	m.mu.Unlock()

	return nil
}

// UnregisterFilter removes a filter
func (m *Manager) UnregisterFilter(name string) {
	m.mu.Lock()
	delete(m.filters, name)
	delete(m.presets, name)
	m.mu.Unlock()
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// Presets returns all registered presets sorted by name
func (m *Manager) Presets() []Preset {
	m.mu.RLock()
	defer m.mu.RUnlock()

	presets := slices.Collect(maps.Values(m.presets))
	slices.SortFunc(presets, func(a, b Preset) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return presets
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Apply evaluates a registered filter against characters
func (m *Manager) Apply(name string, characters []rickmorty.Character) ([]rickmorty.Character, error) {
	filter, exists := m.GetFilter(name)
	if !exists {
		return nil, fmt.Errorf("filter '%s' not found", name)
	}

	return Apply(filter, characters), nil
}

// ApplyAll evaluates every registered filter, keyed by filter name
func (m *Manager) ApplyAll(characters []rickmorty.Character) map[string][]rickmorty.Character {
	m.mu.RLock()
	filters := maps.Clone(m.filters)
	m.mu.RUnlock()

	results := make(map[string][]rickmorty.Character, len(filters))
	for name, filter := range filters {
		results[name] = Apply(filter, characters)
	}
	return results
}
