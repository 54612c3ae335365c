package packfile

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"unsafe"

	"github.com/hupe1980/kpack"
	"github.com/hupe1980/kpack/internal/mmap"
)

// Mapped is a read-only packfile whose words are served straight from a
// memory-mapped payload, without copying them into the heap.
//
// The view reinterprets the payload bytes in host byte order. Packfiles are
// little-endian, so mapped access assumes a little-endian host; Read works
// everywhere.
type Mapped[T kpack.Word] struct {
	m     *mmap.File
	words []T
	size  int
}

// OpenMapped maps the packfile at path and returns a zero-copy view of its
// words. Only uncompressed files can be mapped; compressed ones fail with
// ErrCompressed. The checksum is verified before the view is handed out.
func OpenMapped[T kpack.Word](path string) (*Mapped[T], error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("packfile: map: %w", err)
	}

	mapped, err := newMapped[T](m.Data)
	if err != nil {
		m.Close()
		return nil, err
	}
	mapped.m = m
	return mapped, nil
}

func newMapped[T kpack.Word](data []byte) (*Mapped[T], error) {
	if len(data) < headerSize+trailerSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a packfile", ErrInvalidMagic, len(data))
	}

	h, err := decodeHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}
	if want := kindOf[T](); h.kind != want {
		return nil, fmt.Errorf("%w: file stores %s words, want %s", ErrWordKindMismatch, h.kind, want)
	}
	if h.compression != CompressionNone {
		return nil, fmt.Errorf("%w: got %s", ErrCompressed, h.compression)
	}
	if maxSize := kpack.MaxSize[T](); h.size > uint32(maxSize) {
		return nil, fmt.Errorf("%w: header size %d exceeds the %d-bit packable domain (0 to %d supported)",
			kpack.ErrOverflow, h.size, kpack.Bits[T](), maxSize)
	}

	wb := wordBytes[T]()
	if h.count > uint64(math.MaxInt)/uint64(wb) {
		return nil, fmt.Errorf("packfile: %d words exceed addressable memory", h.count)
	}
	payloadLen := int(h.count) * wb
	if wantLen := headerSize + payloadLen + trailerSize; len(data) != wantLen {
		return nil, fmt.Errorf("packfile: file is %d bytes, want %d for %d words", len(data), wantLen, h.count)
	}

	sum := crc32.Checksum(data[:headerSize+payloadLen], crcTable)
	want := binary.LittleEndian.Uint32(data[headerSize+payloadLen:])
	if sum != want {
		return nil, fmt.Errorf("%w: expected 0x%08x, got 0x%08x", ErrChecksum, want, sum)
	}

	var words []T
	if h.count > 0 {
		// The payload sits 24 bytes into a page-aligned mapping, so the
		// reinterpreted view stays aligned for 8-byte words.
		words = unsafe.Slice((*T)(unsafe.Pointer(&data[headerSize])), h.count)
	}
	return &Mapped[T]{words: words, size: int(h.size)}, nil
}

// Words returns the packed words. The slice aliases the mapping and is only
// valid until Close.
func (m *Mapped[T]) Words() []T {
	return m.words
}

// Size returns the element count each word was packed with.
func (m *Mapped[T]) Size() int {
	return m.size
}

// Count returns the number of stored words.
func (m *Mapped[T]) Count() int {
	return len(m.words)
}

// Close releases the mapping. Word slices obtained earlier become invalid.
func (m *Mapped[T]) Close() error {
	m.words = nil
	return m.m.Close()
}
