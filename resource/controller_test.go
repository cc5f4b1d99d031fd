package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	err := c.AcquireMemory(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// TryAcquire 20 (should fail)
	ok := c.TryAcquireMemory(20)
	assert.False(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Acquire 20 (should block/timeout)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.AcquireMemory(ctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_MemoryAboveLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})
	err := c.AcquireMemory(context.Background(), 11)
	assert.ErrorIs(t, err, ErrMemoryLimit)
	assert.Zero(t, c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	err := c.AcquireMemory(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Runs(t *testing.T) {
	c := NewController(Config{MaxConcurrentRuns: 2})
	assert.Equal(t, int64(2), c.Config().MaxConcurrentRuns)

	require.NoError(t, c.AcquireRun(context.Background()))
	require.NoError(t, c.AcquireRun(context.Background()))

	assert.False(t, c.TryAcquireRun())

	c.ReleaseRun()

	assert.True(t, c.TryAcquireRun())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(context.Background(), 1<<40))
	assert.True(t, c.TryAcquireMemory(1))
	c.ReleaseMemory(1)
	assert.Zero(t, c.MemoryUsage())
	require.NoError(t, c.AcquireRun(context.Background()))
	assert.True(t, c.TryAcquireRun())
	c.ReleaseRun()
	require.NoError(t, c.AcquireIO(context.Background(), 1<<20))
}

func TestRateLimitedIO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	payload := strings.Repeat("0.5,1.5\n", 1000)

	r := NewRateLimitedReader(context.Background(), strings.NewReader(payload), c)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))

	var buf bytes.Buffer
	w := NewRateLimitedWriter(context.Background(), &buf, c)
	n, err := w.Write([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, buf.String())
}

func TestRateLimitedIO_Passthrough(t *testing.T) {
	src := strings.NewReader("x")
	assert.Same(t, io.Reader(src), NewRateLimitedReader(context.Background(), src, nil))

	var buf bytes.Buffer
	assert.Same(t, io.Writer(&buf), NewRateLimitedWriter(context.Background(), &buf, NewController(Config{})))
}

func TestRateLimitedReader_Canceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRateLimitedReader(ctx, strings.NewReader("abc"), c)
	_, err := r.Read(make([]byte, 3))
	assert.ErrorIs(t, err, context.Canceled)
}
