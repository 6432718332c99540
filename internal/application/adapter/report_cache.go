// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// ReportCache defines the interface for caching rendered reports.
type ReportCache interface {
	// Get returns the cached payload and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload for ttl.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
