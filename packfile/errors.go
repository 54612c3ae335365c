package packfile

import "errors"

var (
	// ErrInvalidMagic is returned when the file does not start with the
	// packfile magic bytes.
	ErrInvalidMagic = errors.New("packfile: invalid magic")

	// ErrInvalidVersion is returned when the format version or one of the
	// header enums is not understood by this implementation.
	ErrInvalidVersion = errors.New("packfile: unsupported format")

	// ErrWordKindMismatch is returned when the stored word type does not
	// match the type parameter used to read the file.
	ErrWordKindMismatch = errors.New("packfile: word kind mismatch")

	// ErrChecksum is returned when the CRC32 trailer does not match the
	// header and payload bytes.
	ErrChecksum = errors.New("packfile: checksum mismatch")

	// ErrCompressed is returned by OpenMapped for files whose payload is
	// compressed and therefore cannot be mapped in place.
	ErrCompressed = errors.New("packfile: compressed payload cannot be mapped")
)
