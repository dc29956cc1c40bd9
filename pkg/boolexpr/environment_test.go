package boolexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_Lookup(t *testing.T) {
	env := NewEnvironment(map[string]bool{"a": true, "b": false})

	v, err := env.Lookup("a")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = env.Lookup("b")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = env.Lookup("c")
	assert.ErrorIs(t, err, ErrUndefinedVariable)
}

func TestEnvironment_Empty(t *testing.T) {
	for _, env := range []Environment{EmptyEnvironment(), NewEnvironment(nil), {}} {
		assert.Equal(t, 0, env.Len())
		assert.Empty(t, env.Names())
		_, err := env.Lookup("a")
		assert.ErrorIs(t, err, ErrUndefinedVariable)
	}
}

func TestEnvironment_CopiesInput(t *testing.T) {
	src := map[string]bool{"a": true}
	env := NewEnvironment(src)

	src["a"] = false
	src["b"] = true

	v, err := env.Lookup("a")
	require.NoError(t, err)
	assert.True(t, v)
	assert.False(t, env.Has("b"))

	out := env.Bindings()
	out["a"] = false
	v, _ = env.Lookup("a")
	assert.True(t, v, "Bindings must return a copy")
}

func TestEnvironment_Names(t *testing.T) {
	env := NewEnvironment(map[string]bool{"c": true, "a": false, "b": true})
	assert.Equal(t, []string{"a", "b", "c"}, env.Names())
	assert.Equal(t, 3, env.Len())
	assert.True(t, env.Has("a"))
	assert.False(t, env.Has("d"))
}

func TestEnvironment_WithDefault(t *testing.T) {
	base := NewEnvironment(map[string]bool{"a": false})
	defaulted := base.WithDefault(true)

	assert.False(t, base.HasDefault())
	assert.True(t, defaulted.HasDefault())

	v, err := defaulted.Lookup("missing")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = defaulted.Lookup("a")
	require.NoError(t, err)
	assert.False(t, v, "explicit binding wins over default")

	_, err = base.Lookup("missing")
	assert.ErrorIs(t, err, ErrUndefinedVariable, "receiver must be unchanged")

	assert.False(t, defaulted.Has("missing"))
	assert.Equal(t, 1, defaulted.Len())
}
