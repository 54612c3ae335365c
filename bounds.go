package kpack

import (
	"fmt"
	"sync"
)

// packedBounds is the legal range of a signed packed word for one size,
// stored widened to int64 so one table type serves both signed widths.
type packedBounds struct {
	min int64
	max int64
}

// The signed bound tables are built once, on first use, by packing uniform
// all-min and all-max vectors for every size. Initialization through
// sync.OnceValue happens-before every reader, so lookups need no locking.
var (
	int32Bounds = sync.OnceValue(func() []packedBounds { return buildBounds[int32]() })
	int64Bounds = sync.OnceValue(func() []packedBounds { return buildBounds[int64]() })
)

func buildBounds[T Word]() []packedBounds {
	table := make([]packedBounds, MaxSize[T]())
	for size := 1; size <= MaxSize[T](); size++ {
		min, max, _ := slotParams[T](size)
		table[size-1] = packedBounds{
			min: int64(packUniform(size, min)),
			max: int64(packUniform(size, max)),
		}
	}
	return table
}

// packUniform packs size copies of v. The inputs come from slotParams, so a
// failure means the packer and its own range computation disagree.
func packUniform[T Word](size int, v T) T {
	values := make([]T, size)
	for i := range values {
		values[i] = v
	}
	word, err := Pack(values)
	if err != nil {
		panic("kpack: bound table bootstrap: " + err.Error())
	}
	return word
}

// packedBoundsFor looks up the signed bound table entry for size. Callers
// guarantee T is signed and 1 <= size <= MaxSize.
func packedBoundsFor[T Word](size int) (min, max T) {
	var b packedBounds
	switch any(T(0)).(type) {
	case int32:
		b = int32Bounds()[size-1]
	case int64:
		b = int64Bounds()[size-1]
	}
	return T(b.min), T(b.max)
}

// SlotRange returns the inclusive domain each value must lie in when packing
// size values into T. It fails with ErrOverflow when size is 0, negative, or
// exceeds MaxSize for T.
func SlotRange[T Word](size int) (min, max T, err error) {
	if size < 1 || size > MaxSize[T]() {
		return 0, 0, fmt.Errorf("%w: no slot range for %d values in a %d-bit word (1 to %d supported)",
			ErrOverflow, size, Bits[T](), MaxSize[T]())
	}
	min, max, _ = slotParams[T](size)
	return min, max, nil
}

// PackedRange returns the inclusive range of words that decode as size
// values of T: every word produced by a size-element packer lies in it, and
// every word in it round-trips. The domain rules match SlotRange.
func PackedRange[T Word](size int) (min, max T, err error) {
	if size < 1 || size > MaxSize[T]() {
		return 0, 0, fmt.Errorf("%w: no packed range for %d values in a %d-bit word (1 to %d supported)",
			ErrOverflow, size, Bits[T](), MaxSize[T]())
	}
	if IsSigned[T]() {
		min, max = packedBoundsFor[T](size)
		return min, max, nil
	}
	return 0, maxOf[T]() >> (Bits[T]() % size), nil
}
