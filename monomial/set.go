package monomial

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/kpack"
)

// Set collects monomials of one size, keyed by their packed words in a
// roaring bitmap. Signed words are stored by their unsigned bit pattern, so
// iteration runs in bit-pattern order, not numeric order.
type Set[T kpack.Word] struct {
	size int
	bm   *roaring64.Bitmap
}

// NewSet returns an empty set for monomials of size exponents.
func NewSet[T kpack.Word](size int) (*Set[T], error) {
	if size < 0 || size > kpack.MaxSize[T]() {
		return nil, fmt.Errorf("%w: no monomial set for %d exponents in a %d-bit word (0 to %d supported)",
			kpack.ErrOverflow, size, kpack.Bits[T](), kpack.MaxSize[T]())
	}
	return &Set[T]{size: size, bm: roaring64.NewBitmap()}, nil
}

// Size returns the exponent count shared by all members.
func (s *Set[T]) Size() int { return s.size }

// Add inserts a monomial. It fails with ErrInvalidArgument when the
// monomial's size differs from the set's.
func (s *Set[T]) Add(m Monomial[T]) error {
	if m.Size() != s.size {
		return fmt.Errorf("%w: cannot add a %d-exponent monomial to a %d-exponent set",
			kpack.ErrInvalidArgument, m.Size(), s.size)
	}
	s.bm.Add(uint64(m.Word()))
	return nil
}

// Contains reports whether m is a member.
func (s *Set[T]) Contains(m Monomial[T]) bool {
	return m.Size() == s.size && s.bm.Contains(uint64(m.Word()))
}

// Cardinality returns the number of members.
func (s *Set[T]) Cardinality() uint64 {
	return s.bm.GetCardinality()
}

// Union returns a new set holding the members of both sets.
func (s *Set[T]) Union(o *Set[T]) (*Set[T], error) {
	if o.size != s.size {
		return nil, fmt.Errorf("%w: cannot unite sets of %d and %d exponents",
			kpack.ErrInvalidArgument, s.size, o.size)
	}
	out := s.bm.Clone()
	out.Or(o.bm)
	return &Set[T]{size: s.size, bm: out}, nil
}

// Intersect returns a new set holding the members present in both sets.
func (s *Set[T]) Intersect(o *Set[T]) (*Set[T], error) {
	if o.size != s.size {
		return nil, fmt.Errorf("%w: cannot intersect sets of %d and %d exponents",
			kpack.ErrInvalidArgument, s.size, o.size)
	}
	out := s.bm.Clone()
	out.And(o.bm)
	return &Set[T]{size: s.size, bm: out}, nil
}

// All returns an iterator over the members in bit-pattern order.
func (s *Set[T]) All() iter.Seq[Monomial[T]] {
	return func(yield func(Monomial[T]) bool) {
		it := s.bm.Iterator()
		for it.HasNext() {
			if !yield(Monomial[T]{word: T(it.Next()), size: s.size}) {
				return
			}
		}
	}
}

// Monomials returns the members as a slice, in bit-pattern order.
func (s *Set[T]) Monomials() []Monomial[T] {
	out := make([]Monomial[T], 0, s.bm.GetCardinality())
	for m := range s.All() {
		out = append(out, m)
	}
	return out
}
