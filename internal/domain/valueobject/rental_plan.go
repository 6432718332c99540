// Package valueobject contains domain value objects and pricing policies for the back office.
package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainerror "github.com/gamevault/backoffice/internal/domain/error"
)

// RentalTier is one step of a rental plan. MaxDays of zero marks the unbounded tier.
type RentalTier struct {
	Label   string
	MaxDays int
	FeeRate decimal.Decimal
}

// IsUnbounded reports whether the tier covers every day count above the previous tier.
func (t RentalTier) IsUnbounded() bool {
	return t.MaxDays == 0
}

// RentalQuote is the priced result of renting a game for a number of days.
// RentalFee + Deposit always equals GamePrice.
type RentalQuote struct {
	GamePrice   decimal.Decimal
	Days        int
	RentalFee   decimal.Decimal
	Deposit     decimal.Decimal
	TotalDue    decimal.Decimal
	AppliedPlan string
}

// RentalPlan selects a tier by day count and prices rentals against it.
type RentalPlan struct {
	tiers []RentalTier
	scale int32
}

// DefaultRentalTiers returns the reference rental tiers.
func DefaultRentalTiers() []RentalTier {
	return []RentalTier{
		{Label: "3-day", MaxDays: 3, FeeRate: decimal.RequireFromString("0.10")},
		{Label: "weekly", MaxDays: 7, FeeRate: decimal.RequireFromString("0.15")},
		{Label: "bi-weekly", MaxDays: 14, FeeRate: decimal.RequireFromString("0.25")},
		{Label: "monthly", MaxDays: 30, FeeRate: decimal.RequireFromString("0.35")},
		{Label: "extended", MaxDays: 0, FeeRate: decimal.RequireFromString("0.45")},
	}
}

// NewRentalPlan validates the tiers and builds a plan.
// Tiers must be strictly ascending by MaxDays and end with exactly one unbounded tier.
func NewRentalPlan(tiers []RentalTier, scale int32) (*RentalPlan, error) {
	if len(tiers) == 0 {
		return nil, domainerror.NewPricingError(
			domainerror.ErrCodeInvalidRentalPlan,
			"rental plan has no tiers",
			domainerror.ErrEmptyRentalPlan,
		)
	}

	last := len(tiers) - 1
	prevMax := 0
	for i, tier := range tiers {
		if tier.FeeRate.IsNegative() || tier.FeeRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, domainerror.NewPricingError(
				domainerror.ErrCodeInvalidRentalPlan,
				fmt.Sprintf("tier %q has fee rate %s", tier.Label, tier.FeeRate),
				domainerror.ErrInvalidFeeRate,
			)
		}
		if tier.MaxDays < 0 {
			return nil, domainerror.NewPricingError(
				domainerror.ErrCodeInvalidRentalPlan,
				fmt.Sprintf("tier %q has negative max days", tier.Label),
				domainerror.ErrRentalPlanOrder,
			)
		}
		if tier.IsUnbounded() != (i == last) {
			return nil, domainerror.NewPricingError(
				domainerror.ErrCodeInvalidRentalPlan,
				fmt.Sprintf("tier %q breaks the unbounded-last rule", tier.Label),
				domainerror.ErrRentalPlanNotCovering,
			)
		}
		if !tier.IsUnbounded() {
			if tier.MaxDays <= prevMax {
				return nil, domainerror.NewPricingError(
					domainerror.ErrCodeInvalidRentalPlan,
					fmt.Sprintf("tier %q max days %d is not above %d", tier.Label, tier.MaxDays, prevMax),
					domainerror.ErrRentalPlanOrder,
				)
			}
			prevMax = tier.MaxDays
		}
	}

	copied := make([]RentalTier, len(tiers))
	copy(copied, tiers)

	return &RentalPlan{tiers: copied, scale: scale}, nil
}

// Tiers returns a copy of the plan's tiers.
func (p *RentalPlan) Tiers() []RentalTier {
	out := make([]RentalTier, len(p.tiers))
	copy(out, p.tiers)
	return out
}

// TierFor returns the smallest tier covering days, falling back to the unbounded tier.
func (p *RentalPlan) TierFor(days int) RentalTier {
	for _, tier := range p.tiers {
		if tier.IsUnbounded() || days <= tier.MaxDays {
			return tier
		}
	}
	return p.tiers[len(p.tiers)-1]
}

// Quote prices a rental. Callers must reject days < 1 before calling.
// The fee is rounded once, half-up, and the deposit is the remainder of the game price.
func (p *RentalPlan) Quote(gamePrice decimal.Decimal, days int) RentalQuote {
	tier := p.TierFor(days)

	fee := RoundMoney(gamePrice.Mul(tier.FeeRate), p.scale)
	if fee.GreaterThan(gamePrice) {
		fee = gamePrice
	}

	return RentalQuote{
		GamePrice:   gamePrice,
		Days:        days,
		RentalFee:   fee,
		Deposit:     gamePrice.Sub(fee),
		TotalDue:    gamePrice,
		AppliedPlan: tier.Label,
	}
}
