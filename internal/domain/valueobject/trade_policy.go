// Package valueobject contains domain value objects and pricing policies for the back office.
package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainerror "github.com/gamevault/backoffice/internal/domain/error"
)

// TradeType classifies a trade by the direction of the value gap.
type TradeType string

const (
	TradeTypeEven      TradeType = "even"
	TradeTypeTradeUp   TradeType = "trade_up"
	TradeTypeTradeDown TradeType = "trade_down"
)

// TradeFeeBracket charges Fee for value gaps up to MaxGap. A zero MaxGap marks the unbounded bracket.
type TradeFeeBracket struct {
	MaxGap decimal.Decimal
	Fee    decimal.Decimal
}

// IsUnbounded reports whether the bracket covers every gap above the previous bracket.
func (b TradeFeeBracket) IsUnbounded() bool {
	return b.MaxGap.IsZero()
}

// DefaultTradeFeeBrackets returns the reference trade fee table.
func DefaultTradeFeeBrackets() []TradeFeeBracket {
	return []TradeFeeBracket{
		{MaxGap: decimal.NewFromInt(500), Fee: decimal.NewFromInt(50)},
		{MaxGap: decimal.NewFromInt(1000), Fee: decimal.NewFromInt(100)},
		{MaxGap: decimal.NewFromInt(2500), Fee: decimal.NewFromInt(150)},
		{MaxGap: decimal.Zero, Fee: decimal.NewFromInt(200)},
	}
}

// TradeValuation is the settlement of a trade.
type TradeValuation struct {
	ValueGiven     decimal.Decimal
	ValueReceived  decimal.Decimal
	CashDifference decimal.Decimal
	TradeFee       decimal.Decimal
	TradeType      TradeType
}

// AmountDue returns what the customer pays at the counter.
func (v TradeValuation) AmountDue() decimal.Decimal {
	return v.CashDifference.Add(v.TradeFee)
}

// TradeGameValue is a game taking part in a trade. SalePrice is carried for display only.
type TradeGameValue struct {
	GameID        string
	OriginalPrice decimal.Decimal
	SalePrice     *decimal.Decimal
	Quantity      int
}

// TradePolicy values trades against a fee table.
type TradePolicy struct {
	brackets []TradeFeeBracket
}

// NewTradePolicy validates the fee table and builds a policy.
func NewTradePolicy(brackets []TradeFeeBracket) (*TradePolicy, error) {
	if len(brackets) == 0 {
		return nil, domainerror.NewPricingError(
			domainerror.ErrCodeInvalidFeeTable,
			"trade fee table has no brackets",
			domainerror.ErrInvalidFeeTable,
		)
	}

	last := len(brackets) - 1
	prevMax := decimal.Zero
	for i, bracket := range brackets {
		if bracket.Fee.IsNegative() || bracket.MaxGap.IsNegative() {
			return nil, domainerror.NewPricingError(
				domainerror.ErrCodeInvalidFeeTable,
				fmt.Sprintf("bracket %d has a negative value", i),
				domainerror.ErrInvalidFeeTable,
			)
		}
		if bracket.IsUnbounded() != (i == last) {
			return nil, domainerror.NewPricingError(
				domainerror.ErrCodeInvalidFeeTable,
				fmt.Sprintf("bracket %d breaks the unbounded-last rule", i),
				domainerror.ErrInvalidFeeTable,
			)
		}
		if !bracket.IsUnbounded() {
			if !bracket.MaxGap.GreaterThan(prevMax) {
				return nil, domainerror.NewPricingError(
					domainerror.ErrCodeInvalidFeeTable,
					fmt.Sprintf("bracket %d max gap %s is not above %s", i, bracket.MaxGap, prevMax),
					domainerror.ErrInvalidFeeTable,
				)
			}
			prevMax = bracket.MaxGap
		}
	}

	copied := make([]TradeFeeBracket, len(brackets))
	copy(copied, brackets)

	return &TradePolicy{brackets: copied}, nil
}

// Brackets returns a copy of the fee table.
func (p *TradePolicy) Brackets() []TradeFeeBracket {
	out := make([]TradeFeeBracket, len(p.brackets))
	copy(out, p.brackets)
	return out
}

// ClassifyTrade compares received against given value.
func ClassifyTrade(valueGiven, valueReceived decimal.Decimal) TradeType {
	switch valueReceived.Cmp(valueGiven) {
	case 0:
		return TradeTypeEven
	case 1:
		return TradeTypeTradeUp
	default:
		return TradeTypeTradeDown
	}
}

// FeeFor returns the fee for an absolute value gap. Even trades are free.
func (p *TradePolicy) FeeFor(tradeType TradeType, gap decimal.Decimal) decimal.Decimal {
	if tradeType == TradeTypeEven {
		return decimal.Zero
	}
	gap = gap.Abs()
	for _, bracket := range p.brackets {
		if bracket.IsUnbounded() || gap.LessThanOrEqual(bracket.MaxGap) {
			return bracket.Fee
		}
	}
	return p.brackets[len(p.brackets)-1].Fee
}

// Valuate settles a trade. The store never pays cash back: trade-downs and even trades
// carry a zero cash difference.
func (p *TradePolicy) Valuate(valueGiven, valueReceived decimal.Decimal) TradeValuation {
	tradeType := ClassifyTrade(valueGiven, valueReceived)

	cash := decimal.Zero
	if tradeType == TradeTypeTradeUp {
		cash = valueReceived.Sub(valueGiven)
	}

	return TradeValuation{
		ValueGiven:     valueGiven,
		ValueReceived:  valueReceived,
		CashDifference: cash,
		TradeFee:       p.FeeFor(tradeType, valueReceived.Sub(valueGiven)),
		TradeType:      tradeType,
	}
}

// CalculateGamesValue sums original price times quantity. Sale prices never apply to trades.
func CalculateGamesValue(items []TradeGameValue) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		total = total.Add(LineTotal(LineItem{
			ID:        item.GameID,
			UnitPrice: item.OriginalPrice,
			Quantity:  item.Quantity,
		}))
	}
	return total
}
