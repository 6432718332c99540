// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "pending"
	TradeStatusCompleted TradeStatus = "completed"
	TradeStatusCancelled TradeStatus = "cancelled"
)

// Trade represents an exchange of games between a customer and the store.
// GamesGiven are handed in by the customer; GamesReceived leave the store's stock.
type Trade struct {
	ID             uuid.UUID
	Status         TradeStatus
	GamesGiven     []GameLine
	GamesReceived  []GameLine
	CashDifference decimal.Decimal
	TradeFee       decimal.Decimal
	TradeType      valueobject.TradeType
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

// Lines returns every game line of the trade, given first.
func (t *Trade) Lines() []GameLine {
	lines := make([]GameLine, 0, len(t.GamesGiven)+len(t.GamesReceived))
	lines = append(lines, t.GamesGiven...)
	return append(lines, t.GamesReceived...)
}
