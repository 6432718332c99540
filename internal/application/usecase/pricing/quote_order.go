package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/application/adapter"
	"github.com/gamevault/backoffice/internal/domain/entity"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

// OrderItemInput is one line of an order quote.
// Catalog games are priced by GameID and Variant; ad-hoc lines need UnitPrice.
type OrderItemInput struct {
	GameID    *uuid.UUID
	UnitPrice *decimal.Decimal
	Quantity  int
	Variant   entity.StockVariant
}

// QuoteOrderInput represents the input for quoting an order.
type QuoteOrderInput struct {
	Items       []OrderItemInput
	Discount    valueobject.DiscountSpec
	DeliveryFee decimal.Decimal
}

// QuoteOrderOutput represents the output of quoting an order.
type QuoteOrderOutput struct {
	Items   []valueobject.LineItem
	Pricing valueobject.OrderPricing
}

// QuoteOrderUseCase handles order price quotes.
type QuoteOrderUseCase struct {
	gameRepo              adapter.GameRepository
	cartridgeOnlyDiscount decimal.Decimal
	scale                 int32
}

// NewQuoteOrderUseCase creates a new QuoteOrderUseCase instance.
func NewQuoteOrderUseCase(gameRepo adapter.GameRepository, cartridgeOnlyDiscount decimal.Decimal, scale int32) *QuoteOrderUseCase {
	return &QuoteOrderUseCase{
		gameRepo:              gameRepo,
		cartridgeOnlyDiscount: cartridgeOnlyDiscount,
		scale:                 scale,
	}
}

// Execute prices every line, applies the discount to the subtotal and adds the delivery fee.
func (uc *QuoteOrderUseCase) Execute(ctx context.Context, input QuoteOrderInput) (*QuoteOrderOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	ids := make([]*uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.GameID)
	}

	games, err := loadGames(ctx, uc.gameRepo, uniqueIDs(ids...))
	if err != nil {
		return nil, err
	}

	lines := make([]valueobject.LineItem, 0, len(input.Items))
	for i, item := range input.Items {
		line := valueobject.LineItem{Quantity: item.Quantity}

		switch {
		case item.UnitPrice != nil:
			line.UnitPrice = *item.UnitPrice
			line.ID = fmt.Sprintf("line-%d", i+1)
			if item.GameID != nil {
				line.ID = item.GameID.String()
			}
		default:
			game := games[*item.GameID]
			line.ID = game.ID.String()
			line.UnitPrice = uc.variantPrice(game, item.Variant)
		}

		lines = append(lines, line)
	}

	return &QuoteOrderOutput{
		Items:   lines,
		Pricing: valueobject.PriceOrder(lines, input.Discount, input.DeliveryFee, uc.scale),
	}, nil
}

func (uc *QuoteOrderUseCase) variantPrice(game *entity.Game, variant entity.StockVariant) decimal.Decimal {
	if variant == entity.StockVariantCartridgeOnly {
		return game.CartridgeOnlySellingPrice(uc.cartridgeOnlyDiscount)
	}
	return game.SellingPrice()
}

// validateInput validates the input parameters.
func (uc *QuoteOrderUseCase) validateInput(input QuoteOrderInput) error {
	if len(input.Items) == 0 {
		return domainerror.NewPricingError(
			domainerror.ErrCodeEmptyLineItems,
			"empty order",
			domainerror.ErrEmptyLineItems,
		)
	}

	for i, item := range input.Items {
		if item.Quantity < 1 {
			return domainerror.NewPricingError(
				domainerror.ErrCodeInvalidQuantity,
				fmt.Sprintf("invalid quantity on item %d", i),
				domainerror.ErrInvalidQuantity,
			)
		}
		if item.GameID == nil && item.UnitPrice == nil {
			return domainerror.NewPricingError(
				domainerror.ErrCodeMissingGamePrice,
				fmt.Sprintf("missing game on item %d", i),
				domainerror.ErrMissingGamePrice,
			)
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return domainerror.NewPricingError(
				domainerror.ErrCodeNegativePrice,
				fmt.Sprintf("invalid unit price on item %d", i),
				domainerror.ErrNegativePrice,
			)
		}
		switch item.Variant {
		case "", entity.StockVariantWithCase, entity.StockVariantCartridgeOnly:
		default:
			return domainerror.NewPricingError(
				domainerror.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown variant %q on item %d", item.Variant, i),
				nil,
			)
		}
	}

	if !input.Discount.IsValid() {
		return domainerror.NewPricingError(
			domainerror.ErrCodeInvalidDiscount,
			"invalid discount",
			domainerror.ErrInvalidDiscount,
		)
	}

	if input.DeliveryFee.IsNegative() {
		return domainerror.NewPricingError(
			domainerror.ErrCodeNegativePrice,
			"invalid delivery fee",
			domainerror.ErrNegativePrice,
		)
	}

	return nil
}
