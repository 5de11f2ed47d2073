package resource

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	assert.Equal(t, 2, c.Workers())

	require.NoError(t, c.AcquireWorker(context.Background()))
	require.NoError(t, c.AcquireWorker(context.Background()))

	// Budget exhausted.
	assert.False(t, c.TryAcquireWorker())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.AcquireWorker(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	require.NoError(t, c.AcquireIO(context.Background(), 1<<20))
	assert.Greater(t, c.Workers(), 0)
}

func TestController_UnlimitedIO(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})
	require.NoError(t, c.AcquireIO(context.Background(), 1<<30))
}

func TestController_IOSplitsLargeRequests(t *testing.T) {
	// Request larger than the burst must not error.
	c := NewController(Config{MaxWorkers: 1, IOLimitBytesPerSec: 1 << 20})
	require.NoError(t, c.AcquireIO(context.Background(), 3<<20))
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1, IOLimitBytesPerSec: 1 << 20})

	src := strings.NewReader("hello world")
	r := NewRateLimitedReader(context.Background(), src, c)

	buf := make([]byte, 64)
	n, _ := r.Read(buf)
	assert.Equal(t, "hello world", string(buf[:n]))
}
