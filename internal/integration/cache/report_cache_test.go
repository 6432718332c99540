package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *reportCache) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, &reportCache{client: client}
}

func TestReportCache(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key is a miss", func(t *testing.T) {
		_, cache := newTestCache(t)

		payload, found, err := cache.Get(ctx, "financials:report:absent")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, payload)
	})

	t.Run("stored payload is returned", func(t *testing.T) {
		_, cache := newTestCache(t)

		require.NoError(t, cache.Set(ctx, "financials:report:k", []byte(`{"granularity":"month"}`), time.Minute))
		payload, found, err := cache.Get(ctx, "financials:report:k")

		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"granularity":"month"}`, string(payload))
	})

	t.Run("entries expire after the ttl", func(t *testing.T) {
		server, cache := newTestCache(t)

		require.NoError(t, cache.Set(ctx, "financials:report:k", []byte("x"), time.Minute))
		server.FastForward(2 * time.Minute)

		_, found, err := cache.Get(ctx, "financials:report:k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("server failure surfaces as an error", func(t *testing.T) {
		server, cache := newTestCache(t)
		server.Close()

		_, _, err := cache.Get(ctx, "financials:report:k")
		assert.Error(t, err)
	})
}
