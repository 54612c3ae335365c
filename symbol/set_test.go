package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	s := NewSet("y", "x", "y", "z", "x")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"x", "y", "z"}, s.Names())
}

func TestNewSetEmpty(t *testing.T) {
	s := NewSet()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Names())

	var zero Set
	assert.True(t, s.Equal(zero))
}

func TestSetContains(t *testing.T) {
	s := NewSet("x", "z")

	assert.True(t, s.Contains("x"))
	assert.True(t, s.Contains("z"))
	assert.False(t, s.Contains("y"))
	assert.False(t, s.Contains(""))
}

func TestSetIndex(t *testing.T) {
	s := NewSet("x", "y", "z")

	assert.Equal(t, 0, s.Index("x"))
	assert.Equal(t, 1, s.Index("y"))
	assert.Equal(t, 2, s.Index("z"))
	assert.Equal(t, -1, s.Index("w"))
}

func TestSetEqual(t *testing.T) {
	assert.True(t, NewSet("x", "y").Equal(NewSet("y", "x")))
	assert.False(t, NewSet("x").Equal(NewSet("y")))
	assert.False(t, NewSet("x").Equal(NewSet("x", "y")))
}

func TestSetUnion(t *testing.T) {
	a := NewSet("x", "z")
	b := NewSet("y", "z")

	u := a.Union(b)
	assert.Equal(t, []string{"x", "y", "z"}, u.Names())

	// Inputs stay untouched.
	assert.Equal(t, []string{"x", "z"}, a.Names())
	assert.Equal(t, []string{"y", "z"}, b.Names())
}

func TestSetUnionEmpty(t *testing.T) {
	a := NewSet("x")

	assert.True(t, a.Union(NewSet()).Equal(a))
	assert.True(t, NewSet().Union(a).Equal(a))
	assert.Equal(t, 0, NewSet().Union(NewSet()).Len())
}

func TestSetNamesCopy(t *testing.T) {
	s := NewSet("x", "y")

	names := s.Names()
	names[0] = "mutated"

	require.Equal(t, []string{"x", "y"}, s.Names())
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "{}", NewSet().String())
	assert.Equal(t, "{'x'}", NewSet("x").String())
	assert.Equal(t, "{'x', 'y'}", NewSet("y", "x").String())
}
