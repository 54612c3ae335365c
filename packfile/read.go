package packfile

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hupe1980/kpack"
)

// Read loads a packfile from r, returning the stored words and the element
// size they were packed with. The word type parameter must match the kind
// recorded in the header.
func Read[T kpack.Word](ctx context.Context, r io.Reader, opts ...Option) ([]T, int, error) {
	o := applyOptions(opts)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var src io.Reader = r
	if o.rateLimit > 0 {
		src = newRateLimitedReader(ctx, r, o.rateLimit)
	}
	cr := newChecksumReader(src)

	var hbuf [headerSize]byte
	if _, err := io.ReadFull(cr, hbuf[:]); err != nil {
		return nil, 0, fmt.Errorf("packfile: read header: %w", err)
	}
	h, err := decodeHeader(hbuf[:])
	if err != nil {
		return nil, 0, err
	}
	if want := kindOf[T](); h.kind != want {
		return nil, 0, fmt.Errorf("%w: file stores %s words, want %s", ErrWordKindMismatch, h.kind, want)
	}
	if maxSize := kpack.MaxSize[T](); h.size > uint32(maxSize) {
		return nil, 0, fmt.Errorf("%w: header size %d exceeds the %d-bit packable domain (0 to %d supported)",
			kpack.ErrOverflow, h.size, kpack.Bits[T](), maxSize)
	}

	wb := wordBytes[T]()
	if h.count > uint64(math.MaxInt)/uint64(wb) {
		return nil, 0, fmt.Errorf("packfile: %d words exceed addressable memory", h.count)
	}
	payloadLen := int(h.count) * wb

	var payload []byte
	if h.compression == CompressionNone {
		payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(cr, payload); err != nil {
			return nil, 0, fmt.Errorf("packfile: read payload: %w", err)
		}
	} else {
		payload, err = readBlocks(cr, payloadLen, h.compression)
		if err != nil {
			return nil, 0, err
		}
	}

	// The trailer is not part of the checksummed range.
	var tbuf [trailerSize]byte
	if _, err := io.ReadFull(src, tbuf[:]); err != nil {
		return nil, 0, fmt.Errorf("packfile: read checksum: %w", err)
	}
	if want, got := binary.LittleEndian.Uint32(tbuf[:]), cr.Sum(); want != got {
		return nil, 0, fmt.Errorf("%w: expected 0x%08x, got 0x%08x", ErrChecksum, want, got)
	}

	words := decodeWords[T](payload)

	o.logger.DebugContext(ctx, "packfile read",
		"words", len(words),
		"size", h.size,
		"kind", h.kind.String(),
		"compression", h.compression.String(),
	)
	return words, int(h.size), nil
}

// ReadFile loads the packfile at path.
func ReadFile[T kpack.Word](ctx context.Context, path string, opts ...Option) ([]T, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("packfile: open: %w", err)
	}
	defer f.Close()

	return Read[T](ctx, bufio.NewReaderSize(f, fileBufferSize), opts...)
}
