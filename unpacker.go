package kpack

import (
	"fmt"
	"iter"
	"slices"
)

// Unpacker extracts the values packed into a single word, in their original
// order. Construction validates the word eagerly, so Pop cannot fail until
// the unpacker is exhausted.
//
// Internally the word is held as an unsigned offset from the smallest legal
// packed word, which makes slot extraction a mask-and-shift for signed and
// unsigned types alike.
type Unpacker[T Word] struct {
	value    uint64
	mask     uint64
	slotMin  uint64
	size     int
	slotBits int
	index    int
	shift    int
}

// NewUnpacker returns an unpacker for a word holding size values.
//
// It fails with ErrOverflow when size is outside the packable domain for T
// or when word is outside the legal packed range for (T, size), and with
// ErrInvalidArgument when size is 0 and word is not 0.
func NewUnpacker[T Word](word T, size int) (*Unpacker[T], error) {
	if err := checkUnpackSize[T](size); err != nil {
		return nil, err
	}
	if size == 0 {
		if word != 0 {
			return nil, fmt.Errorf("%w: word %d claims zero values, only 0 packs to size 0", ErrInvalidArgument, word)
		}
		return &Unpacker[T]{}, nil
	}

	slotMin, _, slotBits := slotParams[T](size)
	u := &Unpacker[T]{
		mask:     ^uint64(0) >> (64 - slotBits),
		size:     size,
		slotBits: slotBits,
	}

	if IsSigned[T]() {
		minPacked, maxPacked := packedBoundsFor[T](size)
		if word < minPacked || word > maxPacked {
			return nil, fmt.Errorf("%w: word %d outside packed range [%d, %d] for %d values",
				ErrOverflow, word, minPacked, maxPacked, size)
		}
		u.value = uint64(word) - uint64(minPacked)
		u.slotMin = uint64(slotMin)
		return u, nil
	}

	maxDecodable := maxOf[T]() >> (Bits[T]() % size)
	if word > maxDecodable {
		return nil, fmt.Errorf("%w: word %d outside packed range [0, %d] for %d values",
			ErrOverflow, word, maxDecodable, size)
	}
	u.value = uint64(word)
	return u, nil
}

// Pop returns the next value. It fails with ErrExhausted once size values
// have been extracted.
func (u *Unpacker[T]) Pop() (T, error) {
	if u.index >= u.size {
		return 0, fmt.Errorf("%w: all %d values extracted", ErrExhausted, u.size)
	}
	return u.pop(), nil
}

func (u *Unpacker[T]) pop() T {
	slot := (u.value >> u.shift) & u.mask
	u.shift += u.slotBits
	u.index++
	return T(slot + u.slotMin)
}

// Values returns an iterator over the remaining values. It shares the
// cursor with Pop: values already popped are not replayed, and breaking out
// leaves the unpacker positioned at the next value.
func (u *Unpacker[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for u.index < u.size {
			if !yield(u.pop()) {
				return
			}
		}
	}
}

// Size returns the declared element count.
func (u *Unpacker[T]) Size() int { return u.size }

// SlotBits returns the bit width of each slot.
func (u *Unpacker[T]) SlotBits() int { return u.slotBits }

// Unpack decodes all size values from word in one call.
func Unpack[T Word](word T, size int) ([]T, error) {
	return AppendUnpack[T](nil, word, size)
}

// AppendUnpack decodes all size values from word, appending them to dst and
// returning the extended slice. When dst has capacity no allocation occurs.
// On error dst is returned unchanged.
func AppendUnpack[T Word](dst []T, word T, size int) ([]T, error) {
	u, err := NewUnpacker(word, size)
	if err != nil {
		return dst, err
	}
	dst = slices.Grow(dst, size)
	for u.index < u.size {
		dst = append(dst, u.pop())
	}
	return dst, nil
}
