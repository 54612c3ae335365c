package kpack

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type batchOptions struct {
	parallelism int
}

// BatchOption configures PackRows and UnpackRows.
type BatchOption func(*batchOptions)

// WithParallelism caps the number of worker goroutines. Values below 1 are
// ignored; the default is GOMAXPROCS.
func WithParallelism(n int) BatchOption {
	return func(o *batchOptions) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

func applyBatchOptions(optFns []BatchOption) batchOptions {
	o := batchOptions{
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// PackRows packs every row into one word each, producing a word column.
// All rows must have the same length; a ragged row fails the whole call
// with ErrInvalidArgument. Rows are split into disjoint chunks processed by
// parallel workers, so no locking occurs; the first failing row cancels the
// remaining work and its error is returned with the row index attached.
func PackRows[T Word](ctx context.Context, rows [][]T, optFns ...BatchOption) ([]T, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	size := len(rows[0])
	if err := checkPackSize[T](size); err != nil {
		return nil, err
	}

	o := applyBatchOptions(optFns)
	words := make([]T, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for start, end := range chunks(len(rows), o.parallelism) {
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if len(rows[i]) != size {
					return fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidArgument, i, len(rows[i]), size)
				}
				word, err := Pack(rows[i])
				if err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}
				words[i] = word
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return words, nil
}

// UnpackRows decodes a word column back into rows of size values each. It is
// the inverse of PackRows and shares its parallelism and error behavior.
func UnpackRows[T Word](ctx context.Context, words []T, size int, optFns ...BatchOption) ([][]T, error) {
	if len(words) == 0 {
		return nil, nil
	}
	if err := checkUnpackSize[T](size); err != nil {
		return nil, err
	}

	o := applyBatchOptions(optFns)
	rows := make([][]T, len(words))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for start, end := range chunks(len(words), o.parallelism) {
		g.Go(func() error {
			// One backing array per chunk keeps rows contiguous and
			// allocations off the per-word path.
			backing := make([]T, 0, (end-start)*size)
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				var err error
				backing, err = AppendUnpack(backing, words[i], size)
				if err != nil {
					return fmt.Errorf("word %d: %w", i, err)
				}
				rows[i] = backing[len(backing)-size:]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// chunks yields up to workers half-open [start, end) ranges covering n items.
func chunks(n, workers int) func(yield func(int, int) bool) {
	return func(yield func(int, int) bool) {
		step := (n + workers - 1) / workers
		for start := 0; start < n; start += step {
			end := min(start+step, n)
			if !yield(start, end) {
				return
			}
		}
	}
}
