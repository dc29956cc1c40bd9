package boolexpr

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Environment binds variable names to boolean values.
//
// An Environment is immutable once constructed; every method is a
// read-only lookup, so a single Environment may be shared between
// goroutines and reused across evaluations.
type Environment struct {
	bindings map[string]bool

	// fallback, when non-nil, is returned for names with no binding.
	fallback *bool
}

// NewEnvironment creates an Environment from the given bindings.
// The map is copied; later changes to it are not observed.
// A nil map yields an empty Environment.
func NewEnvironment(bindings map[string]bool) Environment {
	return Environment{bindings: maps.Clone(bindings)}
}

// EmptyEnvironment returns an Environment with no bindings.
// It is sufficient for trees that contain only constants.
func EmptyEnvironment() Environment {
	return Environment{}
}

// Lookup returns the value bound to name.
// Returns *UndefinedVariableError if name has no binding and no default is set.
func (e Environment) Lookup(name string) (bool, error) {
	if v, ok := e.bindings[name]; ok {
		return v, nil
	}
	if e.fallback != nil {
		return *e.fallback, nil
	}
	return false, &UndefinedVariableError{Name: name}
}

// WithDefault returns a copy of the Environment in which names with no
// binding resolve to v instead of failing. The receiver is unchanged.
//
// Defaulting is never applied implicitly; callers opt in here or through
// WithUndefinedPolicy on an Evaluator.
func (e Environment) WithDefault(v bool) Environment {
	return Environment{bindings: e.bindings, fallback: &v}
}

// HasDefault reports whether missing names resolve to a default value.
func (e Environment) HasDefault() bool {
	return e.fallback != nil
}

// Has returns true if name is explicitly bound.
func (e Environment) Has(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Len returns the number of bindings.
func (e Environment) Len() int {
	return len(e.bindings)
}

// Names returns the bound variable names in sorted order.
func (e Environment) Names() []string {
	names := lo.Keys(e.bindings)
	slices.Sort(names)
	return names
}

// Bindings returns a copy of the name to value mapping.
func (e Environment) Bindings() map[string]bool {
	out := make(map[string]bool, len(e.bindings))
	maps.Copy(out, e.bindings)
	return out
}
