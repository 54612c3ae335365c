package packfile

import (
	"hash"
	"hash/crc32"
	"io"
)

// CRC32 with the IEEE polynomial detects storage corruption; it is not a
// defense against deliberate tampering.
var crcTable = crc32.MakeTable(crc32.IEEE)

// checksumWriter hashes everything written through it.
type checksumWriter struct {
	w    io.Writer
	hash hash.Hash32
}

func newChecksumWriter(w io.Writer) *checksumWriter {
	return &checksumWriter{w: w, hash: crc32.New(crcTable)}
}

func (cw *checksumWriter) Write(p []byte) (int, error) {
	cw.hash.Write(p) // hash.Hash writes never fail
	return cw.w.Write(p)
}

func (cw *checksumWriter) Sum() uint32 {
	return cw.hash.Sum32()
}

// checksumReader hashes everything read through it.
type checksumReader struct {
	r    io.Reader
	hash hash.Hash32
}

func newChecksumReader(r io.Reader) *checksumReader {
	return &checksumReader{r: r, hash: crc32.New(crcTable)}
}

func (cr *checksumReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}

func (cr *checksumReader) Sum() uint32 {
	return cr.hash.Sum32()
}
