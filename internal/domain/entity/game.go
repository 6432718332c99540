// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Game represents a catalog cartridge offered by the store.
// StockWithCase and StockCartridgeOnly are the two sellable stock variants.
type Game struct {
	ID                 uuid.UUID
	Title              string
	Platform           string
	Price              decimal.Decimal
	SalePrice          *decimal.Decimal // Optional, used only while IsOnSale
	IsOnSale           bool
	CostPrice          decimal.Decimal
	StockWithCase      int
	StockCartridgeOnly int
	CartridgeOnlyPrice *decimal.Decimal // Optional, derived from Price when unset
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TotalStock returns the units on hand across both variants.
func (g *Game) TotalStock() int {
	return nonNegative(g.StockWithCase) + nonNegative(g.StockCartridgeOnly)
}

// SellingPrice returns the price of the boxed variant, honoring an active sale.
func (g *Game) SellingPrice() decimal.Decimal {
	if g.IsOnSale && g.SalePrice != nil && g.SalePrice.IsPositive() {
		return *g.SalePrice
	}
	return g.Price
}

// CartridgeOnlySellingPrice returns the explicit cartridge-only price, or the base price
// reduced by the fixed cartridge-only discount, floored at zero.
func (g *Game) CartridgeOnlySellingPrice(fixedDiscount decimal.Decimal) decimal.Decimal {
	if g.CartridgeOnlyPrice != nil {
		return *g.CartridgeOnlyPrice
	}
	return decimal.Max(decimal.Zero, g.Price.Sub(fixedDiscount))
}

// MatchesPlatform reports whether the game belongs to the given platform (case-insensitive).
// An empty platform matches every game.
func (g *Game) MatchesPlatform(platform string) bool {
	return PlatformMatches(g.Platform, platform)
}

// PlatformMatches compares a record platform against a filter, ignoring case and surrounding spaces.
func PlatformMatches(recordPlatform, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(recordPlatform), filter)
}

// GameLine is a quantity of one catalog game inside a transaction.
type GameLine struct {
	GameID    uuid.UUID
	Title     string
	Platform  string
	Quantity  int
	UnitPrice decimal.Decimal
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
