// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// SourceFilter narrows source record reads.
// Empty Statuses reads every status; From/To bound the record's milestone date when set.
type SourceFilter struct {
	Statuses []string
	From     *time.Time
	To       *time.Time
}

// FinancialsRepository defines the read operations a financial report needs.
type FinancialsRepository interface {
	// ListBuyings returns supplier purchases with their items, ordered by completion date.
	ListBuyings(ctx context.Context, filter SourceFilter) ([]*entity.Buying, error)

	// ListOrders returns customer orders with their items, ordered by creation date.
	ListOrders(ctx context.Context, filter SourceFilter) ([]*entity.Order, error)

	// ListRentals returns rentals ordered by their last status change.
	ListRentals(ctx context.Context, filter SourceFilter) ([]*entity.Rental, error)

	// ListTrades returns trades with both sides of games, ordered by completion date.
	ListTrades(ctx context.Context, filter SourceFilter) ([]*entity.Trade, error)
}
