package kpack

import (
	"fmt"
	"unsafe"
)

// Word is the closed set of packable word types. The slot arithmetic is only
// sound for these exact widths, so named types with one of them as an
// underlying type are deliberately excluded.
type Word interface {
	int32 | uint32 | int64 | uint64
}

// Bits returns the width of T in bits.
func Bits[T Word]() int {
	return int(unsafe.Sizeof(T(0))) * 8
}

// IsSigned reports whether T is a signed type.
func IsSigned[T Word]() bool {
	return ^T(0) < 0
}

// MaxSize returns the largest element count packable into T: the full bit
// width for unsigned types, one less for signed types (the sign asymmetry
// costs one slot of headroom).
func MaxSize[T Word]() int {
	if IsSigned[T]() {
		return Bits[T]() - 1
	}
	return Bits[T]()
}

func minOf[T Word]() T {
	if !IsSigned[T]() {
		return 0
	}
	return T(1) << (Bits[T]() - 1)
}

func maxOf[T Word]() T {
	if IsSigned[T]() {
		return ^(T(1) << (Bits[T]() - 1))
	}
	return ^T(0)
}

// slotParams computes the per-slot domain and slot width for packing size
// values into T. The caller must have validated size via checkSize.
//
// Signed slots reserve a guard bit whenever size divides the bit width
// evenly, so that the two's-complement pattern of a negative slot stays
// confined to its own window during additive accumulation. size == 1 is
// granted the full type range: with a single slot there is no neighbor to
// bleed into.
func slotParams[T Word](size int) (min, max T, slotBits int) {
	if size == 0 {
		return 0, 0, 0
	}

	bits := Bits[T]()
	if !IsSigned[T]() {
		slotBits = bits / size
		return 0, ^T(0) >> (bits - slotBits), slotBits
	}

	if size == 1 {
		return minOf[T](), maxOf[T](), bits
	}

	slotBits = bits / size
	if bits%size == 0 {
		slotBits--
	}
	return -(T(1) << (slotBits - 1)), T(1)<<(slotBits-1) - 1, slotBits
}

func checkPackSize[T Word](size int) error {
	if size < 0 || size > MaxSize[T]() {
		return fmt.Errorf("%w: cannot pack %d values into a %d-bit word (0 to %d supported)",
			ErrOverflow, size, Bits[T](), MaxSize[T]())
	}
	return nil
}

func checkUnpackSize[T Word](size int) error {
	if size < 0 || size > MaxSize[T]() {
		return fmt.Errorf("%w: cannot unpack %d values from a %d-bit word (0 to %d supported)",
			ErrOverflow, size, Bits[T](), MaxSize[T]())
	}
	return nil
}
