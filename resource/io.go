package resource

import (
	"context"
	"io"
)

// RateLimitedReader throttles reads through a Controller's IO limiter.
type RateLimitedReader struct {
	ctx   context.Context
	r     io.Reader
	rc    *Controller
	burst int
}

// NewRateLimitedReader wraps r. With a nil controller or no IO limit the
// reader passes through unchanged.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) io.Reader {
	if rc == nil || rc.ioLimiter == nil {
		return r
	}
	return &RateLimitedReader{ctx: ctx, r: r, rc: rc, burst: rc.ioLimiter.Burst()}
}

func (r *RateLimitedReader) Read(p []byte) (int, error) {
	// WaitN rejects requests larger than the burst.
	if len(p) > r.burst {
		p = p[:r.burst]
	}
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// RateLimitedWriter throttles writes through a Controller's IO limiter.
type RateLimitedWriter struct {
	ctx   context.Context
	w     io.Writer
	rc    *Controller
	burst int
}

// NewRateLimitedWriter wraps w. With a nil controller or no IO limit the
// writer passes through unchanged.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) io.Writer {
	if rc == nil || rc.ioLimiter == nil {
		return w
	}
	return &RateLimitedWriter{ctx: ctx, w: w, rc: rc, burst: rc.ioLimiter.Burst()}
}

func (w *RateLimitedWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := p
		if len(chunk) > w.burst {
			chunk = chunk[:w.burst]
		}
		if err := w.rc.AcquireIO(w.ctx, len(chunk)); err != nil {
			return written, err
		}
		n, err := w.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}
