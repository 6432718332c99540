// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuyingStatus represents the lifecycle state of a stock purchase from a supplier.
type BuyingStatus string

const (
	BuyingStatusPending   BuyingStatus = "pending"
	BuyingStatusCompleted BuyingStatus = "completed"
	BuyingStatusCancelled BuyingStatus = "cancelled"
)

// UnknownSupplier labels purchases recorded without a supplier name.
const UnknownSupplier = "Unknown Supplier"

// Buying represents a purchase of cartridges from a supplier.
type Buying struct {
	ID           uuid.UUID
	SupplierName *string // Optional, reported as UnknownSupplier when empty
	Status       BuyingStatus
	TotalCost    decimal.Decimal
	Items        []GameLine
	CompletedAt  *time.Time // Set once the stock is received
	CreatedAt    time.Time
}

// Supplier returns the supplier name, falling back to UnknownSupplier.
func (b *Buying) Supplier() string {
	if b.SupplierName == nil || *b.SupplierName == "" {
		return UnknownSupplier
	}
	return *b.SupplierName
}
