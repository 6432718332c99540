package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// RentalModel represents the rentals table in the database.
type RentalModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status    string          `gorm:"type:varchar(20);not null;index"`
	GameID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	GameTitle string          `gorm:"type:varchar(255)"`
	Platform  string          `gorm:"type:varchar(50);index"`
	GamePrice decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Days      int             `gorm:"not null"`
	RentalFee decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Deposit   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StartDate time.Time       `gorm:"type:date"`
	EndDate   time.Time       `gorm:"type:date"`
	UpdatedAt *time.Time      `gorm:"type:timestamp;index;autoUpdateTime:false"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RentalModel.
func (RentalModel) TableName() string {
	return "rentals"
}

// ToEntity converts a RentalModel to a domain Rental entity.
func (m *RentalModel) ToEntity() *entity.Rental {
	return &entity.Rental{
		ID:        m.ID,
		Status:    entity.RentalStatus(m.Status),
		GameID:    m.GameID,
		GameTitle: m.GameTitle,
		Platform:  m.Platform,
		GamePrice: m.GamePrice,
		Days:      m.Days,
		RentalFee: m.RentalFee,
		Deposit:   m.Deposit,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}

// RentalFromEntity creates a RentalModel from a domain Rental entity.
func RentalFromEntity(rental *entity.Rental) *RentalModel {
	return &RentalModel{
		ID:        rental.ID,
		Status:    string(rental.Status),
		GameID:    rental.GameID,
		GameTitle: rental.GameTitle,
		Platform:  rental.Platform,
		GamePrice: rental.GamePrice,
		Days:      rental.Days,
		RentalFee: rental.RentalFee,
		Deposit:   rental.Deposit,
		StartDate: rental.StartDate,
		EndDate:   rental.EndDate,
		UpdatedAt: rental.UpdatedAt,
		CreatedAt: rental.CreatedAt,
	}
}
