// Package valueobject contains domain value objects and pricing policies for the back office.
package valueobject

import "github.com/shopspring/decimal"

// DefaultMoneyScale is the number of decimal places money is rounded to (whole currency units).
const DefaultMoneyScale int32 = 0

var hundred = decimal.NewFromInt(100)

// DiscountKind represents how a discount value is interpreted.
type DiscountKind string

const (
	DiscountKindNone       DiscountKind = ""
	DiscountKindPercentage DiscountKind = "percentage"
	DiscountKindFixed      DiscountKind = "fixed"
)

// IsValid reports whether the kind is one of the known discount kinds.
func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountKindNone, DiscountKindPercentage, DiscountKindFixed:
		return true
	default:
		return false
	}
}

// DiscountSpec describes a discount to apply against a base amount.
type DiscountSpec struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

// NoDiscount returns a DiscountSpec that never discounts.
func NoDiscount() DiscountSpec {
	return DiscountSpec{Kind: DiscountKindNone, Value: decimal.Zero}
}

// IsValid checks the discount invariants: non-negative value, percentage within [0, 100].
func (d DiscountSpec) IsValid() bool {
	if !d.Kind.IsValid() || d.Value.IsNegative() {
		return false
	}
	if d.Kind == DiscountKindPercentage && d.Value.GreaterThan(hundred) {
		return false
	}
	return true
}

// LineItem is a priced quantity of a single catalog entry.
type LineItem struct {
	ID        string
	UnitPrice decimal.Decimal
	Quantity  int
}

// ApplyDiscount returns the discount amount for base. The result is never negative and never exceeds base.
func ApplyDiscount(base decimal.Decimal, spec DiscountSpec) decimal.Decimal {
	if !base.IsPositive() || !spec.Value.IsPositive() {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch spec.Kind {
	case DiscountKindPercentage:
		amount = base.Mul(spec.Value).Div(hundred)
	case DiscountKindFixed:
		amount = decimal.Min(spec.Value, base)
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(base) {
		return base
	}
	return amount
}

// LineTotal returns unit price multiplied by quantity.
func LineTotal(item LineItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Profit returns revenue minus cost.
func Profit(revenue, cost decimal.Decimal) decimal.Decimal {
	return revenue.Sub(cost)
}

// Margin returns profit as a percentage of revenue, or zero when revenue is not positive.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}

// RoundMoney rounds an amount half-up to the given number of decimal places.
// Amounts handled here are non-negative, where half-away-from-zero equals half-up.
func RoundMoney(amount decimal.Decimal, scale int32) decimal.Decimal {
	return amount.Round(scale)
}

// OrderPricing is the priced breakdown of an order.
type OrderPricing struct {
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// PriceOrder totals line items, applies the discount to the subtotal only,
// then adds the delivery fee. The delivery fee is never discounted.
func PriceOrder(items []LineItem, discount DiscountSpec, deliveryFee decimal.Decimal, scale int32) OrderPricing {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item))
	}

	discountAmount := RoundMoney(ApplyDiscount(subtotal, discount), scale)
	if discountAmount.GreaterThan(subtotal) {
		discountAmount = subtotal
	}

	if deliveryFee.IsNegative() {
		deliveryFee = decimal.Zero
	}

	return OrderPricing{
		Subtotal:    subtotal,
		Discount:    discountAmount,
		DeliveryFee: deliveryFee,
		Total:       subtotal.Sub(discountAmount).Add(deliveryFee),
	}
}
