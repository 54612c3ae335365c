package packfile

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/kpack"
)

// File layout, all integers little-endian:
//
//	offset 0   magic "KPK1"
//	offset 4   format version (uint8)
//	offset 5   word kind (uint8)
//	offset 6   compression (uint8)
//	offset 7   flags (uint8, reserved)
//	offset 8   element size per word (uint32)
//	offset 12  word count (uint64)
//	offset 20  reserved (uint32)
//	offset 24  payload, then a CRC32 trailer over header and payload
//
// The payload starts 24 bytes in so mapped views stay 8-byte aligned.
const (
	headerSize  = 24
	trailerSize = 4

	formatVersion = 1
)

var magic = [4]byte{'K', 'P', 'K', '1'}

// wordKind identifies the stored word type in the header.
type wordKind uint8

const (
	kindInvalid wordKind = iota
	kindInt32
	kindUint32
	kindInt64
	kindUint64
)

func (k wordKind) String() string {
	switch k {
	case kindInt32:
		return "int32"
	case kindUint32:
		return "uint32"
	case kindInt64:
		return "int64"
	case kindUint64:
		return "uint64"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func kindOf[T kpack.Word]() wordKind {
	switch any(T(0)).(type) {
	case int32:
		return kindInt32
	case uint32:
		return kindUint32
	case int64:
		return kindInt64
	default:
		return kindUint64
	}
}

// Compression selects how the payload is stored.
type Compression uint8

const (
	// CompressionNone stores words raw. Required for OpenMapped.
	CompressionNone Compression = iota

	// CompressionLZ4 block-compresses the payload with LZ4.
	CompressionLZ4

	// CompressionZSTD block-compresses the payload with zstd.
	CompressionZSTD
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

func (c Compression) valid() bool {
	return c == CompressionNone || c == CompressionLZ4 || c == CompressionZSTD
}

type header struct {
	kind        wordKind
	compression Compression
	size        uint32
	count       uint64
}

func encodeHeader(buf []byte, h header) {
	copy(buf[0:4], magic[:])
	buf[4] = formatVersion
	buf[5] = uint8(h.kind)
	buf[6] = uint8(h.compression)
	buf[7] = 0
	binary.LittleEndian.PutUint32(buf[8:12], h.size)
	binary.LittleEndian.PutUint64(buf[12:20], h.count)
	binary.LittleEndian.PutUint32(buf[20:24], 0)
}

func decodeHeader(buf []byte) (header, error) {
	if [4]byte(buf[0:4]) != magic {
		return header{}, fmt.Errorf("%w: got % x", ErrInvalidMagic, buf[0:4])
	}
	if buf[4] != formatVersion {
		return header{}, fmt.Errorf("%w: version %d", ErrInvalidVersion, buf[4])
	}

	h := header{
		kind:        wordKind(buf[5]),
		compression: Compression(buf[6]),
		size:        binary.LittleEndian.Uint32(buf[8:12]),
		count:       binary.LittleEndian.Uint64(buf[12:20]),
	}
	if h.kind == kindInvalid || h.kind > kindUint64 {
		return header{}, fmt.Errorf("%w: word kind %d", ErrInvalidVersion, uint8(h.kind))
	}
	if !h.compression.valid() {
		return header{}, fmt.Errorf("%w: compression %d", ErrInvalidVersion, uint8(h.compression))
	}
	return h, nil
}

func wordBytes[T kpack.Word]() int {
	return kpack.Bits[T]() / 8
}

func encodeWords[T kpack.Word](words []T) []byte {
	wb := wordBytes[T]()
	buf := make([]byte, len(words)*wb)
	switch wb {
	case 4:
		for i, w := range words {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(w))
		}
	default:
		for i, w := range words {
			binary.LittleEndian.PutUint64(buf[i*8:], uint64(w))
		}
	}
	return buf
}

func decodeWords[T kpack.Word](payload []byte) []T {
	wb := wordBytes[T]()
	words := make([]T, len(payload)/wb)
	switch wb {
	case 4:
		for i := range words {
			words[i] = T(binary.LittleEndian.Uint32(payload[i*4:]))
		}
	default:
		for i := range words {
			words[i] = T(binary.LittleEndian.Uint64(payload[i*8:]))
		}
	}
	return words
}
