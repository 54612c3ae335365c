package kpack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchRows(n, size int) [][]int64 {
	rows := make([][]int64, n)
	for i := range rows {
		row := make([]int64, size)
		for j := range row {
			row[j] = int64((i+j)%7 - 3)
		}
		rows[i] = row
	}
	return rows
}

func TestPackRowsRoundTrip(t *testing.T) {
	ctx := context.Background()
	rows := batchRows(1000, 8)

	words, err := PackRows(ctx, rows)
	require.NoError(t, err)
	require.Len(t, words, len(rows))

	got, err := UnpackRows(ctx, words, 8)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestPackRowsSingleWorker(t *testing.T) {
	ctx := context.Background()
	rows := batchRows(100, 4)

	sequential, err := PackRows(ctx, rows, WithParallelism(1))
	require.NoError(t, err)
	parallel, err := PackRows(ctx, rows, WithParallelism(16))
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestPackRowsEmpty(t *testing.T) {
	words, err := PackRows[int64](context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, words)

	rows, err := UnpackRows[int64](context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestPackRowsRagged(t *testing.T) {
	rows := [][]uint32{{1, 2, 3}, {4, 5}}
	_, err := PackRows(context.Background(), rows)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "row 1")
}

func TestPackRowsValueError(t *testing.T) {
	rows := [][]uint32{{1, 2, 3}, {1, 2, 2000}}
	_, err := PackRows(context.Background(), rows, WithParallelism(1))
	assert.ErrorIs(t, err, ErrOverflow)
	assert.ErrorContains(t, err, "row 1")
}

func TestUnpackRowsWordError(t *testing.T) {
	words := []uint32{0, 1<<30 - 1, 1 << 30}
	_, err := UnpackRows(context.Background(), words, 3, WithParallelism(1))
	assert.ErrorIs(t, err, ErrOverflow)
	assert.ErrorContains(t, err, "word 2")
}

func TestPackRowsSizeError(t *testing.T) {
	rows := [][]int32{make([]int32, 32)}
	_, err := PackRows(context.Background(), rows)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestPackRowsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PackRows(ctx, batchRows(10000, 8))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnpackRowsZeroSize(t *testing.T) {
	words := []int64{0, 0, 0}
	rows, err := UnpackRows(context.Background(), words, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Empty(t, row)
	}

	_, err = UnpackRows(context.Background(), []int64{0, 9}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
