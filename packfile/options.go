package packfile

import "log/slog"

const (
	defaultBlockSize = 256 * 1024

	fileBufferSize = 256 * 1024
)

type options struct {
	compression Compression
	blockSize   int
	rateLimit   float64
	logger      *slog.Logger
}

// Option configures packfile reads and writes.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		compression: CompressionNone,
		blockSize:   defaultBlockSize,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCompression selects the payload compression for writes. The default
// stores words raw, which keeps files usable with OpenMapped. Readers take
// the compression from the file header, not from this option.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithBlockSize sets the uncompressed block size for compressed payloads.
// Non-positive values keep the 256 KiB default.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// WithRateLimit caps read or write throughput in bytes per second.
// Non-positive values mean unlimited.
func WithRateLimit(bytesPerSec float64) Option {
	return func(o *options) {
		o.rateLimit = bytesPerSec
	}
}

// WithLogger sets the structured logger for read and write events.
// The default discards all records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
