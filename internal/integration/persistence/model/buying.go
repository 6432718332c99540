package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// BuyingModel represents the buyings table in the database.
type BuyingModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SupplierName *string         `gorm:"type:varchar(255)"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CompletedAt  *time.Time      `gorm:"type:timestamp;index"`
	CreatedAt    time.Time       `gorm:"not null"`

	Items []BuyingItemModel `gorm:"foreignKey:BuyingID;references:ID"`
}

// TableName returns the table name for the BuyingModel.
func (BuyingModel) TableName() string {
	return "buyings"
}

// BuyingItemModel represents the buying_items table in the database.
type BuyingItemModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyingID uuid.UUID `gorm:"type:uuid;not null;index"`
	GameLineColumns
}

// TableName returns the table name for the BuyingItemModel.
func (BuyingItemModel) TableName() string {
	return "buying_items"
}

// ToEntity converts a BuyingModel and its loaded items to a domain Buying entity.
func (m *BuyingModel) ToEntity() *entity.Buying {
	items := make([]entity.GameLine, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.toEntity()
	}

	return &entity.Buying{
		ID:           m.ID,
		SupplierName: m.SupplierName,
		Status:       entity.BuyingStatus(m.Status),
		TotalCost:    m.TotalCost,
		Items:        items,
		CompletedAt:  m.CompletedAt,
		CreatedAt:    m.CreatedAt,
	}
}

// BuyingFromEntity creates a BuyingModel with items from a domain Buying entity.
func BuyingFromEntity(buying *entity.Buying) *BuyingModel {
	items := make([]BuyingItemModel, len(buying.Items))
	for i, line := range buying.Items {
		items[i] = BuyingItemModel{
			ID:              uuid.New(),
			BuyingID:        buying.ID,
			GameLineColumns: gameLineColumnsFromEntity(line, i),
		}
	}

	return &BuyingModel{
		ID:           buying.ID,
		SupplierName: buying.SupplierName,
		Status:       string(buying.Status),
		TotalCost:    buying.TotalCost,
		CompletedAt:  buying.CompletedAt,
		CreatedAt:    buying.CreatedAt,
		Items:        items,
	}
}
