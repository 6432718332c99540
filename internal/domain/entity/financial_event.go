// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceType identifies which kind of transaction produced a financial event.
type SourceType string

const (
	SourceTypeBuying SourceType = "buying"
	SourceTypeOrder  SourceType = "order"
	SourceTypeRental SourceType = "rental"
	SourceTypeTrade  SourceType = "trade"
)

// EventCategory identifies which counters and totals an event feeds.
type EventCategory string

const (
	EventCategoryCost   EventCategory = "cost"
	EventCategorySale   EventCategory = "sale"
	EventCategoryRental EventCategory = "rental"
	EventCategoryTrade  EventCategory = "trade"
)

// FinancialEvent is a realized transaction reduced to its money effect.
// Events are built per report request and never persisted.
type FinancialEvent struct {
	SourceType SourceType
	SourceID   uuid.UUID
	OccurredAt time.Time
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	Category   EventCategory
	Platforms  []string
}
