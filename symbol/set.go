package symbol

import (
	"slices"
	"strings"
)

// Set is an ordered collection of distinct symbol names. The zero value is
// the empty set. Sets are immutable; operations return new sets.
type Set struct {
	names []string
}

// NewSet builds a set from names, sorting them and dropping duplicates.
func NewSet(names ...string) Set {
	if len(names) == 0 {
		return Set{}
	}
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return Set{names: slices.Compact(sorted)}
}

// Len returns the number of symbols in the set.
func (s Set) Len() int {
	return len(s.names)
}

// Names returns the symbols in ascending order.
func (s Set) Names() []string {
	return slices.Clone(s.names)
}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	_, ok := slices.BinarySearch(s.names, name)
	return ok
}

// Index returns the position of name in the set, or -1 when absent.
func (s Set) Index(name string) int {
	i, ok := slices.BinarySearch(s.names, name)
	if !ok {
		return -1
	}
	return i
}

// Equal reports whether two sets hold the same symbols.
func (s Set) Equal(o Set) bool {
	return slices.Equal(s.names, o.names)
}

// Union returns the set holding every symbol of s and o.
func (s Set) Union(o Set) Set {
	if len(o.names) == 0 {
		return Set{names: s.names}
	}
	if len(s.names) == 0 {
		return Set{names: o.names}
	}

	merged := make([]string, 0, len(s.names)+len(o.names))
	i, j := 0, 0
	for i < len(s.names) && j < len(o.names) {
		switch {
		case s.names[i] == o.names[j]:
			merged = append(merged, s.names[i])
			i++
			j++
		case s.names[i] < o.names[j]:
			merged = append(merged, s.names[i])
			i++
		default:
			merged = append(merged, o.names[j])
			j++
		}
	}
	merged = append(merged, s.names[i:]...)
	merged = append(merged, o.names[j:]...)
	return Set{names: merged}
}

// String renders the set as {'x', 'y'}.
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(name)
		b.WriteByte('\'')
	}
	b.WriteByte('}')
	return b.String()
}
