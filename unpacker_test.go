package kpack

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// Packed range of two int64 slots: all-min and all-max words.
	minPackedInt64Size2 = -2305843010287435776
	maxPackedInt64Size2 = 2305843008139952127
)

func TestNewUnpackerSizeDomain(t *testing.T) {
	_, err := NewUnpacker(int64(0), 64)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = NewUnpacker(uint32(0), 33)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = NewUnpacker(uint64(0), -1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = NewUnpacker(int32(0), 31)
	assert.NoError(t, err)
}

func TestNewUnpackerZeroSize(t *testing.T) {
	u, err := NewUnpacker(int64(0), 0)
	require.NoError(t, err)

	_, err = u.Pop()
	assert.ErrorIs(t, err, ErrExhausted)

	_, err = NewUnpacker(int64(1), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewUnpacker(uint32(7), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewUnpackerWordRange(t *testing.T) {
	t.Run("unsigned", func(t *testing.T) {
		// Three 10-bit slots leave the top 2 bits of a uint32 unused.
		_, err := NewUnpacker(uint32(1<<30-1), 3)
		assert.NoError(t, err)

		_, err = NewUnpacker(uint32(1<<30), 3)
		assert.ErrorIs(t, err, ErrOverflow)

		_, err = NewUnpacker(uint64(1)<<63, 3)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("signed", func(t *testing.T) {
		_, err := NewUnpacker(int64(minPackedInt64Size2), 2)
		assert.NoError(t, err)

		_, err = NewUnpacker(int64(maxPackedInt64Size2), 2)
		assert.NoError(t, err)

		_, err = NewUnpacker(int64(minPackedInt64Size2-1), 2)
		assert.ErrorIs(t, err, ErrOverflow)

		_, err = NewUnpacker(int64(maxPackedInt64Size2+1), 2)
		assert.ErrorIs(t, err, ErrOverflow)

		_, err = NewUnpacker(int64(math.MaxInt64), 2)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestUnpackerPopSequence(t *testing.T) {
	u, err := NewUnpacker(int64(6442450939), 2)
	require.NoError(t, err)

	first, err := u.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(-5), first)

	second, err := u.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(3), second)

	_, err = u.Pop()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestUnpackerValues(t *testing.T) {
	u, err := NewUnpacker(uint32(10492928), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 7, 10}, slices.Collect(u.Values()))

	// The iterator shares the cursor with Pop.
	u, err = NewUnpacker(uint32(10492928), 3)
	require.NoError(t, err)
	for range u.Values() {
		break
	}
	next, err := u.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), next)
}

func TestUnpackerSizeOne(t *testing.T) {
	tests := []int64{math.MinInt64, math.MaxInt64, 0, -1, 42}
	for _, word := range tests {
		got, err := Unpack(word, 1)
		require.NoError(t, err, "word %d", word)
		assert.Equal(t, []int64{word}, got, "word %d", word)
	}

	gotU, err := Unpack(uint64(math.MaxUint64), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{math.MaxUint64}, gotU)
}

func TestAppendUnpack(t *testing.T) {
	buf := make([]int32, 0, 8)

	buf, err := AppendUnpack(buf, int32(0), 2)
	require.NoError(t, err)
	buf, err = AppendUnpack(buf, int32(-1), 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 0, -1}, buf)

	// On error the destination comes back unchanged.
	buf, err = AppendUnpack(buf, int32(5), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, []int32{0, 0, -1}, buf)
}
