// Package bindings stores named variable binding sets for reuse across
// evaluations.
//
// Only Environments are stored. Expression trees are built in code and are
// never persisted. An Environment's default value (see
// boolexpr.Environment.WithDefault) is not stored; loaded Environments
// fail on unbound names until a default is applied again.
package bindings

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr"
)

// Store persists named binding sets.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores env under name, replacing any previous set with that name.
	Save(name string, env boolexpr.Environment) error

	// Load retrieves the binding set saved under name.
	// Returns ErrNotFound if no set has that name.
	Load(name string) (boolexpr.Environment, error)

	// List returns metadata for every stored set, ordered by name.
	// Returns an empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes the set saved under name.
	// Returns nil if it doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without decoding the bindings.
type Info struct {
	Name string
	// Version starts at 1 and increments on every Save of the same name.
	Version   int
	UpdatedAt time.Time
	// Size is the number of bindings in the set.
	Size int
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a binding set doesn't exist.
	ErrNotFound = errors.New("binding set not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("binding store closed")

	// ErrEmptyName indicates Save was called without a name.
	ErrEmptyName = errors.New("binding set name required")
)

// encode serializes the bindings of env as a JSON object.
func encode(env boolexpr.Environment) ([]byte, error) {
	data, err := json.Marshal(env.Bindings())
	if err != nil {
		return nil, fmt.Errorf("encode bindings: %w", err)
	}
	return data, nil
}

// decode is the inverse of encode.
func decode(data []byte) (boolexpr.Environment, error) {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return boolexpr.Environment{}, fmt.Errorf("decode bindings: %w", err)
	}
	return boolexpr.NewEnvironment(m), nil
}
