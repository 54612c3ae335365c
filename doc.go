// Package kpack packs fixed-length vectors of bounded integers into single
// machine words and unpacks them again, exactly.
//
// A packed word divides its bits into equal-width slots, one per element.
// Slot width is fixed at construction from the word type and the element
// count ("size"), so packing size values into a 64-bit word gives each value
// 64/size bits (signed packing additionally reserves a guard bit when size
// divides the width evenly, keeping two's-complement negatives from bleeding
// into the neighboring slot during accumulation).
//
// # Quick start
//
//	p, _ := kpack.NewPacker[int64](2)
//	_ = p.Push(-5)
//	_ = p.Push(3)
//	word, _ := p.Get() // 6442450939
//
//	u, _ := kpack.NewUnpacker(word, 2)
//	a, _ := u.Pop() // -5
//	b, _ := u.Pop() // 3
//
// Or the one-shot forms:
//
//	word, _ := kpack.Pack([]int64{-5, 3})
//	vals, _ := kpack.Unpack(word, 2)
//
// # Guarantees
//
//   - Round trip: for every valid (values, size), unpacking the packed word
//     reproduces the values exactly, in order.
//   - Eager validation: out-of-range values, oversized element counts, and
//     words outside the legal packed range are rejected up front with typed
//     errors (ErrOverflow, ErrCapacityExceeded, ErrExhausted, ErrIncomplete,
//     ErrInvalidArgument); nothing is clamped or truncated.
//   - No synchronization needed: packers and unpackers are single-owner
//     values, and the per-type bound tables used to validate signed words
//     are immutable after their one-time lazy initialization.
//
// SlotRange and PackedRange expose the per-slot domain and the legal packed
// word range for a given (type, size), so callers can pre-validate whole
// batches in O(1). PackRows and UnpackRows process word columns in parallel.
//
// Packed words are consumed by the monomial package as polynomial exponent
// keys and stored in columns on disk by the packfile package.
package kpack
