package bindings

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr"
)

// MemoryStore is an in-memory binding store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	sets   map[string]storedSet
	closed bool
}

type storedSet struct {
	env       boolexpr.Environment
	version   int
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory binding store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets: make(map[string]storedSet),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(name string, env boolexpr.Environment) error {
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Re-create from bindings so a default value is dropped, matching SQLiteStore.
	m.sets[name] = storedSet{
		env:       boolexpr.NewEnvironment(env.Bindings()),
		version:   m.sets[name].version + 1,
		updatedAt: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) (boolexpr.Environment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return boolexpr.Environment{}, ErrStoreClosed
	}

	set, ok := m.sets[name]
	if !ok {
		return boolexpr.Environment{}, ErrNotFound
	}
	return set.env, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.sets))
	for name, set := range m.sets {
		infos = append(infos, Info{
			Name:      name,
			Version:   set.version,
			UpdatedAt: set.updatedAt,
			Size:      set.env.Len(),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.sets, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.sets = nil
	return nil
}
