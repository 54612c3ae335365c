// Package packfile stores columns of packed words in a compact container
// file with integrity checking.
//
// A packfile is a 24-byte header (magic, format version, word kind,
// compression, element size, word count), the words little-endian (raw or
// block-compressed with LZ4 or zstd), and a CRC32 trailer over header and
// payload. Uncompressed files can also be opened as zero-copy memory-mapped
// views.
package packfile
