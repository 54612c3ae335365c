package kpack

import "fmt"

// Packer accumulates a fixed number of integers into a single word. Push the
// declared number of values in order, then read the packed word with Get.
//
// A Packer is a plain value owned by one caller; after a failed Push it
// should be discarded.
type Packer[T Word] struct {
	value    T
	min      T
	max      T
	size     int
	slotBits int
	index    int
	shift    int
}

// NewPacker returns a packer for exactly size values. It fails with
// ErrOverflow when size is negative or exceeds MaxSize for T.
func NewPacker[T Word](size int) (*Packer[T], error) {
	if err := checkPackSize[T](size); err != nil {
		return nil, err
	}
	min, max, slotBits := slotParams[T](size)
	return &Packer[T]{min: min, max: max, size: size, slotBits: slotBits}, nil
}

// Push appends the next value. It fails with ErrCapacityExceeded once size
// values are held and with ErrOverflow when n lies outside the slot range;
// either way the packer's state is unchanged.
func (p *Packer[T]) Push(n T) error {
	if p.index >= p.size {
		return fmt.Errorf("%w: word already holds %d values", ErrCapacityExceeded, p.size)
	}
	if n < p.min || n > p.max {
		return fmt.Errorf("%w: value %d outside slot range [%d, %d]", ErrOverflow, n, p.min, p.max)
	}

	// Guard bits keep signed partial sums representable; shift-and-add
	// is exact.
	p.value += n << p.shift
	p.shift += p.slotBits
	p.index++
	return nil
}

// Get returns the packed word. It fails with ErrIncomplete until exactly
// size values have been pushed. A zero-size packer yields 0 immediately.
func (p *Packer[T]) Get() (T, error) {
	if p.index < p.size {
		return 0, fmt.Errorf("%w: holds %d of %d values", ErrIncomplete, p.index, p.size)
	}
	return p.value, nil
}

// Size returns the declared element count.
func (p *Packer[T]) Size() int { return p.size }

// SlotBits returns the bit width of each slot.
func (p *Packer[T]) SlotBits() int { return p.slotBits }

// Range returns the inclusive per-slot domain accepted by Push.
func (p *Packer[T]) Range() (min, max T) { return p.min, p.max }

// Pack packs values into a single word in one call, with size taken from
// len(values).
func Pack[T Word](values []T) (T, error) {
	p, err := NewPacker[T](len(values))
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		if err := p.Push(v); err != nil {
			return 0, err
		}
	}
	return p.Get()
}
