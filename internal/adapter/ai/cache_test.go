package ai

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarensabesk/HireAI/internal/domain"
)

type countingClient struct {
	calls atomic.Int64
	err   error
}

func (c *countingClient) Generate(_ domain.Context, prompt string) (string, error) {
	c.calls.Add(1)
	if c.err != nil {
		return "", c.err
	}
	return "resp:" + prompt, nil
}

func TestMemoryCacheHit(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	c := NewMemoryCache(base, 4, time.Minute)

	out1, err := c.Generate(context.Background(), "p1")
	require.NoError(t, err)
	out2, err := c.Generate(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.Equal(t, int64(1), base.calls.Load())
}

func TestMemoryCacheFIFOEviction(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	c := NewMemoryCache(base, 2, time.Minute)

	for _, p := range []string{"a", "b", "c"} {
		_, err := c.Generate(context.Background(), p)
		require.NoError(t, err)
	}
	// "a" was evicted, fetching it again hits the base client
	_, err := c.Generate(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(4), base.calls.Load())
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	cc := NewMemoryCache(base, 4, time.Minute).(*memoryCacheClient)

	now := time.Now()
	cc.now = func() time.Time { return now }
	_, err := cc.Generate(context.Background(), "p")
	require.NoError(t, err)

	cc.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = cc.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, int64(2), base.calls.Load())
}

func TestMemoryCacheErrorsNotCached(t *testing.T) {
	t.Parallel()
	base := &countingClient{err: fmt.Errorf("boom")}
	c := NewMemoryCache(base, 4, time.Minute)

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	_, err = c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, int64(2), base.calls.Load())
}

func TestMemoryCacheDisabled(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	assert.Equal(t, domain.AIClient(base), NewMemoryCache(base, 0, time.Minute))
}

func TestRedisCache(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	base := &countingClient{}
	c := NewRedisCache(base, rdb, time.Minute)

	out1, err := c.Generate(context.Background(), "p1")
	require.NoError(t, err)
	out2, err := c.Generate(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.Equal(t, int64(1), base.calls.Load())

	// expiry falls through to the base client again
	mr.FastForward(2 * time.Minute)
	_, err = c.Generate(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), base.calls.Load())
}

func TestRedisCacheNilClientPassthrough(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	assert.Equal(t, domain.AIClient(base), NewRedisCache(base, nil, time.Minute))
}
