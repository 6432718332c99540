package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

// Trade item directions.
const (
	TradeDirectionGiven    = "given"
	TradeDirectionReceived = "received"
)

// TradeModel represents the trades table in the database.
type TradeModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	CashDifference decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TradeFee       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TradeType      string          `gorm:"type:varchar(20)"`
	CompletedAt    *time.Time      `gorm:"type:timestamp;index"`
	CreatedAt      time.Time       `gorm:"not null"`

	Items []TradeItemModel `gorm:"foreignKey:TradeID;references:ID"`
}

// TableName returns the table name for the TradeModel.
func (TradeModel) TableName() string {
	return "trades"
}

// TradeItemModel represents the trade_items table in the database.
// Direction tells whether the customer handed the game in or took it home.
type TradeItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TradeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction string    `gorm:"type:varchar(10);not null"`
	GameLineColumns
}

// TableName returns the table name for the TradeItemModel.
func (TradeItemModel) TableName() string {
	return "trade_items"
}

// ToEntity converts a TradeModel and its loaded items to a domain Trade entity.
func (m *TradeModel) ToEntity() *entity.Trade {
	trade := &entity.Trade{
		ID:             m.ID,
		Status:         entity.TradeStatus(m.Status),
		GamesGiven:     []entity.GameLine{},
		GamesReceived:  []entity.GameLine{},
		CashDifference: m.CashDifference,
		TradeFee:       m.TradeFee,
		TradeType:      valueobject.TradeType(m.TradeType),
		CompletedAt:    m.CompletedAt,
		CreatedAt:      m.CreatedAt,
	}

	for _, item := range m.Items {
		switch item.Direction {
		case TradeDirectionGiven:
			trade.GamesGiven = append(trade.GamesGiven, item.toEntity())
		case TradeDirectionReceived:
			trade.GamesReceived = append(trade.GamesReceived, item.toEntity())
		}
	}

	return trade
}

// TradeFromEntity creates a TradeModel with both sides of items from a domain Trade entity.
func TradeFromEntity(trade *entity.Trade) *TradeModel {
	items := make([]TradeItemModel, 0, len(trade.GamesGiven)+len(trade.GamesReceived))
	add := func(direction string, lines []entity.GameLine) {
		for _, line := range lines {
			items = append(items, TradeItemModel{
				ID:              uuid.New(),
				TradeID:         trade.ID,
				Direction:       direction,
				GameLineColumns: gameLineColumnsFromEntity(line, len(items)),
			})
		}
	}
	add(TradeDirectionGiven, trade.GamesGiven)
	add(TradeDirectionReceived, trade.GamesReceived)

	return &TradeModel{
		ID:             trade.ID,
		Status:         string(trade.Status),
		CashDifference: trade.CashDifference,
		TradeFee:       trade.TradeFee,
		TradeType:      string(trade.TradeType),
		CompletedAt:    trade.CompletedAt,
		CreatedAt:      trade.CreatedAt,
		Items:          items,
	}
}
