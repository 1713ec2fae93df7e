package reports

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newListenerCache(t *testing.T) (*Cache, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), client
}

func TestBumpNotifiesInvalidationListener(t *testing.T) {
	c, _ := newListenerCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int64
	var lastVer atomic.Int64
	err := c.ListenForInvalidation(ctx, "", func(_ context.Context, ver int64) {
		lastVer.Store(ver)
		calls.Add(1)
	})
	require.NoError(t, err)

	// Subscription setup races the first publish, so bump until the
	// listener reports in.
	require.Eventually(t, func() bool {
		require.NoError(t, c.Bump(ctx))
		return calls.Load() > 0
	}, 2*time.Second, 50*time.Millisecond)

	require.Positive(t, lastVer.Load())

	// Once the in-flight messages drain, the hook has seen the version
	// the cache reports.
	require.Eventually(t, func() bool {
		ver, err := c.Version(ctx)
		return err == nil && lastVer.Load() == ver
	}, 2*time.Second, 50*time.Millisecond)
}

func TestListenerSyncsPublishedVersion(t *testing.T) {
	c, client := newListenerCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var lastVer atomic.Int64
	err := c.ListenForInvalidation(ctx, "", func(_ context.Context, ver int64) {
		lastVer.Store(ver)
	})
	require.NoError(t, err)

	// Another process bumped to version 7 and published it.
	require.Eventually(t, func() bool {
		require.NoError(t, client.Publish(ctx, "reports.bump", "7").Err())
		return lastVer.Load() == 7
	}, 2*time.Second, 50*time.Millisecond)

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(7), ver)
}

func TestListenForInvalidationNilCache(t *testing.T) {
	var c *Cache
	require.NoError(t, c.ListenForInvalidation(context.Background(), "", nil))
}
