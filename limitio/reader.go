package limitio

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

type Reader struct {
	ctx     context.Context
	source  io.Reader
	limiter *rate.Limiter
}

// NewReader returns a reader that implements io.Reader with rate limiting.
func NewReader(r io.Reader) *Reader {
	return NewReaderContext(context.Background(), r)
}

// NewReaderContext returns a rate limited reader which stops waiting when the context is cancelled.
func NewReaderContext(ctx context.Context, r io.Reader) *Reader {
	return &Reader{
		ctx:    ctx,
		source: r,
	}
}

// SetRateLimit sets rate limit (bytes/sec) to the reader.
// A burst smaller than one byte is raised to one.
func (s *Reader) SetRateLimit(bytesPerSec float64, burst int) {
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), burst)
}

// Read bytes into p.
func (s *Reader) Read(p []byte) (int, error) {
	if s.limiter == nil {
		return s.source.Read(p)
	}
	burst := s.limiter.Burst()
	// never read more than a burst at once so the wait stays bounded
	if len(p) > burst {
		p = p[:burst]
	}
	n, err := s.source.Read(p)
	if n > 0 {
		if waitErr := s.limiter.WaitN(s.ctx, n); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}
