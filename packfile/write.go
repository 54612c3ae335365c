package packfile

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/kpack"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Write stores words as a packfile on w. Every word must have been packed
// with the given element size; the size is recorded in the header so readers
// can unpack without out-of-band knowledge.
func Write[T kpack.Word](ctx context.Context, w io.Writer, words []T, size int, opts ...Option) error {
	o := applyOptions(opts)

	if err := ctx.Err(); err != nil {
		return err
	}
	if maxSize := kpack.MaxSize[T](); size < 0 || size > maxSize {
		return fmt.Errorf("%w: no packfile for %d elements in a %d-bit word (0 to %d supported)",
			kpack.ErrOverflow, size, kpack.Bits[T](), maxSize)
	}
	if !o.compression.valid() {
		return fmt.Errorf("%w: unknown compression %d", kpack.ErrInvalidArgument, uint8(o.compression))
	}

	var dst io.Writer = w
	if o.rateLimit > 0 {
		dst = newRateLimitedWriter(ctx, w, o.rateLimit)
	}
	counter := &countingWriter{w: dst}
	cw := newChecksumWriter(counter)

	var hbuf [headerSize]byte
	encodeHeader(hbuf[:], header{
		kind:        kindOf[T](),
		compression: o.compression,
		size:        uint32(size),
		count:       uint64(len(words)),
	})
	if _, err := cw.Write(hbuf[:]); err != nil {
		return fmt.Errorf("packfile: write header: %w", err)
	}

	payload := encodeWords(words)
	if o.compression == CompressionNone {
		if len(payload) > 0 {
			if _, err := cw.Write(payload); err != nil {
				return fmt.Errorf("packfile: write payload: %w", err)
			}
		}
	} else if err := writeBlocks(cw, payload, o.compression, o.blockSize); err != nil {
		return err
	}

	// The trailer covers header and payload, so it bypasses the hashing
	// writer.
	var tbuf [trailerSize]byte
	binary.LittleEndian.PutUint32(tbuf[:], cw.Sum())
	if _, err := counter.Write(tbuf[:]); err != nil {
		return fmt.Errorf("packfile: write checksum: %w", err)
	}

	o.logger.DebugContext(ctx, "packfile written",
		"words", len(words),
		"size", size,
		"kind", kindOf[T]().String(),
		"compression", o.compression.String(),
		"bytes", counter.n,
	)
	return nil
}

// WriteFile stores words as a packfile at path. The file is written to a
// temporary sibling and renamed into place, so readers never observe a
// partially written packfile.
func WriteFile[T kpack.Word](ctx context.Context, path string, words []T, size int, opts ...Option) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("packfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	// CreateTemp opens at 0600; packfiles are ordinary data files.
	_ = tmp.Chmod(0o644)

	bw := bufio.NewWriterSize(tmp, fileBufferSize)
	if err := Write(ctx, bw, words, size, opts...); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("packfile: flush %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("packfile: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("packfile: close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("packfile: rename into place: %w", err)
	}
	tmpName = ""

	// Sync the directory so the rename survives a crash. Best effort, not
	// every platform supports fsync on directories.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
