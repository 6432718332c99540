// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentalStatus represents the lifecycle state of a rental.
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusOverdue   RentalStatus = "overdue"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental represents a game lent to a customer for a number of days.
// RentalFee and Deposit are the quote snapshotted at booking time.
type Rental struct {
	ID        uuid.UUID
	Status    RentalStatus
	GameID    uuid.UUID
	GameTitle string
	Platform  string
	GamePrice decimal.Decimal
	Days      int
	RentalFee decimal.Decimal
	Deposit   decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
	UpdatedAt *time.Time // Last status change; the completion date for completed rentals
	CreatedAt time.Time
}
