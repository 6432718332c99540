// Package cache implements the report cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamevault/backoffice/internal/application/adapter"
)

type reportCache struct {
	client redis.UniversalClient
}

// NewReportCache creates a Redis-backed report cache.
func NewReportCache(client redis.UniversalClient) adapter.ReportCache {
	return &reportCache{client: client}
}

func (c *reportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached report: %w", err)
	}
	return payload, true, nil
}

func (c *reportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}
