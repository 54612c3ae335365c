package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/kpack"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Exponents draws size values uniformly from the slot range for packing
// size values into T. It panics when size is not a valid layout for T.
func Exponents[T kpack.Word](r *RNG, size int) []T {
	lo, hi := slotRangeOrPanic[T](size)

	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]T, size)
	fillUniform(r.rand, values, lo, hi)
	return values
}

// ExponentRows draws num rows of size exponents each.
// Uses a single backing array for efficiency.
func ExponentRows[T kpack.Word](r *RNG, num, size int) [][]T {
	lo, hi := slotRangeOrPanic[T](size)

	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]T, num*size)
	rows := make([][]T, num)
	for i := range num {
		row := data[i*size : (i+1)*size]
		fillUniform(r.rand, row, lo, hi)
		rows[i] = row
	}
	return rows
}

// Words draws num packable rows and returns their packed words.
func Words[T kpack.Word](r *RNG, num, size int) []T {
	rows := ExponentRows[T](r, num, size)

	words := make([]T, num)
	for i, row := range rows {
		word, err := kpack.Pack(row)
		if err != nil {
			panic(fmt.Sprintf("testutil: pack generated row: %v", err))
		}
		words[i] = word
	}
	return words
}

func slotRangeOrPanic[T kpack.Word](size int) (lo, hi T) {
	lo, hi, err := kpack.SlotRange[T](size)
	if err != nil {
		panic(fmt.Sprintf("testutil: size %d: %v", size, err))
	}
	return lo, hi
}

// fillUniform fills dst with uniform draws from [lo, hi]. The span
// arithmetic runs in uint64 so full-width slot ranges wrap correctly.
// Caller must hold the RNG lock.
func fillUniform[T kpack.Word](rng *rand.Rand, dst []T, lo, hi T) {
	span := uint64(hi) - uint64(lo) + 1
	for i := range dst {
		if span == 0 {
			dst[i] = T(rng.Uint64())
			continue
		}
		dst[i] = T(uint64(lo) + rng.Uint64()%span)
	}
}
