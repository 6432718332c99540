// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// GameModel represents the games table in the database.
type GameModel struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Title              string           `gorm:"type:varchar(255);not null;index"`
	Platform           string           `gorm:"type:varchar(50);not null;index"`
	Price              decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	SalePrice          *decimal.Decimal `gorm:"type:decimal(15,2)"`
	IsOnSale           bool             `gorm:"default:false"`
	CostPrice          decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	StockWithCase      int              `gorm:"not null;default:0"`
	StockCartridgeOnly int              `gorm:"not null;default:0"`
	CartridgeOnlyPrice *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`
}

// TableName returns the table name for the GameModel.
func (GameModel) TableName() string {
	return "games"
}

// ToEntity converts a GameModel to a domain Game entity.
func (m *GameModel) ToEntity() *entity.Game {
	return &entity.Game{
		ID:                 m.ID,
		Title:              m.Title,
		Platform:           m.Platform,
		Price:              m.Price,
		SalePrice:          m.SalePrice,
		IsOnSale:           m.IsOnSale,
		CostPrice:          m.CostPrice,
		StockWithCase:      m.StockWithCase,
		StockCartridgeOnly: m.StockCartridgeOnly,
		CartridgeOnlyPrice: m.CartridgeOnlyPrice,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// GameFromEntity creates a GameModel from a domain Game entity.
func GameFromEntity(game *entity.Game) *GameModel {
	return &GameModel{
		ID:                 game.ID,
		Title:              game.Title,
		Platform:           game.Platform,
		Price:              game.Price,
		SalePrice:          game.SalePrice,
		IsOnSale:           game.IsOnSale,
		CostPrice:          game.CostPrice,
		StockWithCase:      game.StockWithCase,
		StockCartridgeOnly: game.StockCartridgeOnly,
		CartridgeOnlyPrice: game.CartridgeOnlyPrice,
		CreatedAt:          game.CreatedAt,
		UpdatedAt:          game.UpdatedAt,
	}
}
