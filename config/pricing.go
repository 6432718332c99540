package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

// PricingPolicy is the pricing policy file layout.
//
//	rental_tiers:
//	  - label: 3-day
//	    max_days: 3
//	    fee_rate: "0.10"
//	trade_fee_brackets:
//	  - max_gap: 500
//	    fee: 50
type PricingPolicy struct {
	RentalTiers      []RentalTierConfig      `mapstructure:"rental_tiers"`
	TradeFeeBrackets []TradeFeeBracketConfig `mapstructure:"trade_fee_brackets"`
}

// RentalTierConfig is one rental tier row. MaxDays of zero is the unbounded tier.
type RentalTierConfig struct {
	Label   string `mapstructure:"label"`
	MaxDays int    `mapstructure:"max_days"`
	FeeRate string `mapstructure:"fee_rate"`
}

// TradeFeeBracketConfig is one trade fee row. A zero MaxGap is the unbounded bracket.
type TradeFeeBracketConfig struct {
	MaxGap string `mapstructure:"max_gap"`
	Fee    string `mapstructure:"fee"`
}

// LoadPricingPolicy reads a pricing policy file. An empty path yields an empty policy,
// which resolves to the default tiers and brackets.
func LoadPricingPolicy(path string) (*PricingPolicy, error) {
	var policy PricingPolicy
	if path == "" {
		return &policy, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read pricing policy %s: %w", path, err)
	}
	if err := v.Unmarshal(&policy); err != nil {
		return nil, fmt.Errorf("failed to decode pricing policy %s: %w", path, err)
	}
	return &policy, nil
}

// RentalPlan builds the rental plan, using the default tiers when none are configured.
func (p *PricingPolicy) RentalPlan(scale int32) (*valueobject.RentalPlan, error) {
	tiers := valueobject.DefaultRentalTiers()
	if len(p.RentalTiers) > 0 {
		tiers = make([]valueobject.RentalTier, 0, len(p.RentalTiers))
		for i, row := range p.RentalTiers {
			rate, err := decimal.NewFromString(row.FeeRate)
			if err != nil {
				return nil, fmt.Errorf("rental tier %d: invalid fee_rate %q: %w", i, row.FeeRate, err)
			}
			tiers = append(tiers, valueobject.RentalTier{Label: row.Label, MaxDays: row.MaxDays, FeeRate: rate})
		}
	}
	return valueobject.NewRentalPlan(tiers, scale)
}

// TradePolicy builds the trade policy, using the default fee table when none is configured.
func (p *PricingPolicy) TradePolicy() (*valueobject.TradePolicy, error) {
	brackets := valueobject.DefaultTradeFeeBrackets()
	if len(p.TradeFeeBrackets) > 0 {
		brackets = make([]valueobject.TradeFeeBracket, 0, len(p.TradeFeeBrackets))
		for i, row := range p.TradeFeeBrackets {
			maxGap, err := decimal.NewFromString(row.MaxGap)
			if err != nil {
				return nil, fmt.Errorf("trade fee bracket %d: invalid max_gap %q: %w", i, row.MaxGap, err)
			}
			fee, err := decimal.NewFromString(row.Fee)
			if err != nil {
				return nil, fmt.Errorf("trade fee bracket %d: invalid fee %q: %w", i, row.Fee, err)
			}
			brackets = append(brackets, valueobject.TradeFeeBracket{MaxGap: maxGap, Fee: fee})
		}
	}
	return valueobject.NewTradePolicy(brackets)
}
