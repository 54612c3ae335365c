package monomial

import (
	"fmt"
	"strings"

	"github.com/hupe1980/kpack"
	"github.com/hupe1980/kpack/symbol"
)

// Monomial is a packed exponent vector: size exponents encoded into one
// word of T. The zero value is the empty monomial with no variables.
// Monomials are immutable values; arithmetic returns new ones.
type Monomial[T kpack.Word] struct {
	word T
	size int
}

// New packs exponents into a monomial. It fails with ErrOverflow when the
// exponent count or any single exponent is out of range for T.
func New[T kpack.Word](exponents []T) (Monomial[T], error) {
	word, err := kpack.Pack(exponents)
	if err != nil {
		return Monomial[T]{}, err
	}
	return Monomial[T]{word: word, size: len(exponents)}, nil
}

// FromWord wraps an already packed word holding size exponents, validating
// it the same way an unpacker would.
func FromWord[T kpack.Word](word T, size int) (Monomial[T], error) {
	if _, err := kpack.NewUnpacker(word, size); err != nil {
		return Monomial[T]{}, err
	}
	return Monomial[T]{word: word, size: size}, nil
}

// One returns the unit monomial of size variables: every exponent zero.
func One[T kpack.Word](size int) (Monomial[T], error) {
	return FromWord[T](0, size)
}

// Word returns the packed representation.
func (m Monomial[T]) Word() T { return m.word }

// Size returns the number of exponents.
func (m Monomial[T]) Size() int { return m.size }

// Exponents decodes the packed exponents.
func (m Monomial[T]) Exponents() []T {
	return m.AppendExponents(nil)
}

// AppendExponents decodes the packed exponents, appending them to dst.
func (m Monomial[T]) AppendExponents(dst []T) []T {
	out, err := kpack.AppendUnpack(dst, m.word, m.size)
	if err != nil {
		// Construction validates every word, so decoding cannot fail.
		panic("monomial: invalid packed word: " + err.Error())
	}
	return out
}

// Degree returns the sum of all exponents. The sum is checked, so it fails
// with ErrOverflow instead of wrapping.
func (m Monomial[T]) Degree() (T, error) {
	var sum T
	for i, e := range m.Exponents() {
		s, ok := checkedAdd(sum, e)
		if !ok {
			return 0, fmt.Errorf("%w: degree sum %d + %d at position %d leaves the %d-bit range",
				kpack.ErrOverflow, sum, e, i, kpack.Bits[T]())
		}
		sum = s
	}
	return sum, nil
}

// PartialDegree returns the sum of the exponents at the given positions.
// Positions must ascend strictly and lie in [0, Size).
func (m Monomial[T]) PartialDegree(positions []int) (T, error) {
	exps := m.Exponents()

	var sum T
	prev := -1
	for _, pos := range positions {
		if pos < 0 || pos >= m.size {
			return 0, fmt.Errorf("%w: partial degree position %d out of range [0, %d)",
				kpack.ErrInvalidArgument, pos, m.size)
		}
		if pos <= prev {
			return 0, fmt.Errorf("%w: partial degree position %d repeats or descends",
				kpack.ErrInvalidArgument, pos)
		}
		s, ok := checkedAdd(sum, exps[pos])
		if !ok {
			return 0, fmt.Errorf("%w: partial degree sum %d + %d leaves the %d-bit range",
				kpack.ErrOverflow, sum, exps[pos], kpack.Bits[T]())
		}
		sum = s
		prev = pos
	}
	return sum, nil
}

// Mul multiplies two monomials by adding exponents slot-wise and repacking.
// Sizes must match. Every sum is validated, first against the type and then
// against the slot range, so products that no longer fit report ErrOverflow.
func (m Monomial[T]) Mul(o Monomial[T]) (Monomial[T], error) {
	if m.size != o.size {
		return Monomial[T]{}, fmt.Errorf("%w: cannot multiply monomials of %d and %d exponents",
			kpack.ErrInvalidArgument, m.size, o.size)
	}

	// Decode both into one buffer; the first half becomes the sums.
	buf := m.AppendExponents(make([]T, 0, 2*m.size))
	buf = o.AppendExponents(buf)
	a, b := buf[:m.size], buf[m.size:]
	for i := range a {
		s, ok := checkedAdd(a[i], b[i])
		if !ok {
			return Monomial[T]{}, fmt.Errorf("%w: exponent sum %d + %d at position %d leaves the %d-bit range",
				kpack.ErrOverflow, a[i], b[i], i, kpack.Bits[T]())
		}
		a[i] = s
	}
	return New(a)
}

// MergeSymbols widens the monomial to a merged symbol set by inserting zero
// exponents at the mapped positions. The map must validate against Size.
// Inserted zeros never change existing exponents, so repacking fails only
// when the merged size exceeds the packable domain for T.
func (m Monomial[T]) MergeSymbols(ins symbol.InsertionMap) (Monomial[T], error) {
	if err := ins.Validate(m.size); err != nil {
		return Monomial[T]{}, fmt.Errorf("%w: merge symbols: %v", kpack.ErrInvalidArgument, err)
	}
	if ins.Count() == 0 {
		return m, nil
	}

	exps := m.Exponents()
	merged := make([]T, 0, m.size+ins.Count())
	prev := 0
	for _, in := range ins {
		merged = append(merged, exps[prev:in.Index]...)
		for range in.Names {
			merged = append(merged, 0)
		}
		prev = in.Index
	}
	merged = append(merged, exps[prev:]...)

	return New(merged)
}

// Equal reports whether two monomials have the same exponents. Packed words
// are canonical per size, so comparing them compares exponents.
func (m Monomial[T]) Equal(o Monomial[T]) bool {
	return m.word == o.word && m.size == o.size
}

// IsOne reports whether every exponent is zero. All-zero exponents pack to
// word 0 at every size.
func (m Monomial[T]) IsOne() bool {
	return m.word == 0
}

// String renders the exponents as [2, 0, -1].
func (m Monomial[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range m.Exponents() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", e)
	}
	b.WriteByte(']')
	return b.String()
}

// checkedAdd adds without silent wraparound.
func checkedAdd[T kpack.Word](a, b T) (T, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}
