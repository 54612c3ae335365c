package packfile

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

func newLimiter(bytesPerSec float64) *rate.Limiter {
	burst := int(bytesPerSec)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(bytesPerSec), burst)
}

// rateLimitedWriter throttles writes through a token bucket. Writes larger
// than the burst are split so WaitN never sees an unsatisfiable request.
type rateLimitedWriter struct {
	ctx     context.Context
	w       io.Writer
	limiter *rate.Limiter
}

func newRateLimitedWriter(ctx context.Context, w io.Writer, bytesPerSec float64) *rateLimitedWriter {
	return &rateLimitedWriter{ctx: ctx, w: w, limiter: newLimiter(bytesPerSec)}
}

func (rw *rateLimitedWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		n := min(len(p), rw.limiter.Burst())
		if err := rw.limiter.WaitN(rw.ctx, n); err != nil {
			return total, err
		}
		m, err := rw.w.Write(p[:n])
		total += m
		if err != nil {
			return total, err
		}
		p = p[n:]
	}
	return total, nil
}

// rateLimitedReader throttles reads by capping each read at the remaining
// burst allowance.
type rateLimitedReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

func newRateLimitedReader(ctx context.Context, r io.Reader, bytesPerSec float64) *rateLimitedReader {
	return &rateLimitedReader{ctx: ctx, r: r, limiter: newLimiter(bytesPerSec)}
}

func (rr *rateLimitedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return rr.r.Read(p)
	}
	n := min(len(p), rr.limiter.Burst())
	if err := rr.limiter.WaitN(rr.ctx, n); err != nil {
		return 0, err
	}
	return rr.r.Read(p[:n])
}
