package packfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressed payloads are split into blocks, each framed as
//
//	[uncompressed length uint32][compressed length uint32][bytes]
//
// A compressed length of zero marks a block stored raw because compression
// did not pay off for it.
const blockHeaderSize = 8

var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		return enc
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

func compressBlock(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("packfile: lz4 compress: %w", err)
		}
		if n == 0 {
			// Incompressible input.
			return nil, nil
		}
		return buf[:n], nil
	case CompressionZSTD:
		enc := zstdEncoderPool.Get().(*zstd.Encoder)
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("packfile: compress: unsupported compression %s", c)
	}
}

func decompressBlock(src []byte, uncompressedLen int, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		dst := make([]byte, uncompressedLen)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("packfile: lz4 decompress: %w", err)
		}
		if n != uncompressedLen {
			return nil, fmt.Errorf("packfile: lz4 decompress: got %d bytes, want %d", n, uncompressedLen)
		}
		return dst, nil
	case CompressionZSTD:
		dec := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(dec)
		dst, err := dec.DecodeAll(src, make([]byte, 0, uncompressedLen))
		if err != nil {
			return nil, fmt.Errorf("packfile: zstd decompress: %w", err)
		}
		if len(dst) != uncompressedLen {
			return nil, fmt.Errorf("packfile: zstd decompress: got %d bytes, want %d", len(dst), uncompressedLen)
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("packfile: decompress: unsupported compression %s", c)
	}
}

// writeBlocks frames data into compressed blocks of at most blockSize
// uncompressed bytes each. Blocks that barely shrink are stored raw.
func writeBlocks(w io.Writer, data []byte, c Compression, blockSize int) error {
	var frame [blockHeaderSize]byte
	for len(data) > 0 {
		n := min(len(data), blockSize)
		block := data[:n]
		data = data[n:]

		compressed, err := compressBlock(block, c)
		if err != nil {
			return err
		}
		if compressed == nil || len(compressed) > n*9/10 {
			compressed = nil
		}

		binary.LittleEndian.PutUint32(frame[0:4], uint32(n))
		binary.LittleEndian.PutUint32(frame[4:8], uint32(len(compressed)))
		if _, err := w.Write(frame[:]); err != nil {
			return fmt.Errorf("packfile: write block header: %w", err)
		}
		payload := compressed
		if payload == nil {
			payload = block
		}
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("packfile: write block: %w", err)
		}
	}
	return nil
}

// readBlocks reassembles exactly want uncompressed bytes from framed blocks.
func readBlocks(r io.Reader, want int, c Compression) ([]byte, error) {
	out := make([]byte, 0, want)
	var frame [blockHeaderSize]byte
	for len(out) < want {
		if _, err := io.ReadFull(r, frame[:]); err != nil {
			return nil, fmt.Errorf("packfile: read block header: %w", err)
		}
		uncompressedLen := int(binary.LittleEndian.Uint32(frame[0:4]))
		compressedLen := int(binary.LittleEndian.Uint32(frame[4:8]))
		if uncompressedLen == 0 || len(out)+uncompressedLen > want {
			return nil, fmt.Errorf("packfile: block of %d bytes overruns %d byte payload", uncompressedLen, want)
		}

		if compressedLen == 0 {
			raw := make([]byte, uncompressedLen)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, fmt.Errorf("packfile: read block: %w", err)
			}
			out = append(out, raw...)
			continue
		}

		src := make([]byte, compressedLen)
		if _, err := io.ReadFull(r, src); err != nil {
			return nil, fmt.Errorf("packfile: read block: %w", err)
		}
		block, err := decompressBlock(src, uncompressedLen, c)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}
