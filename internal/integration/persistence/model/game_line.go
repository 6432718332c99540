package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// GameLineColumns are the columns shared by every transaction item table.
// Title and platform are copied at write time so reports survive catalog edits.
// Position keeps the line order of the source record.
type GameLineColumns struct {
	GameID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(255)"`
	Platform  string          `gorm:"type:varchar(50);index"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Position  int             `gorm:"not null;default:0"`
}

func (c GameLineColumns) toEntity() entity.GameLine {
	return entity.GameLine{
		GameID:    c.GameID,
		Title:     c.Title,
		Platform:  c.Platform,
		Quantity:  c.Quantity,
		UnitPrice: c.UnitPrice,
	}
}

func gameLineColumnsFromEntity(line entity.GameLine, position int) GameLineColumns {
	return GameLineColumns{
		GameID:    line.GameID,
		Title:     line.Title,
		Platform:  line.Platform,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
		Position:  position,
	}
}
