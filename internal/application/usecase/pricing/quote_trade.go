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

// TradeItemInput is one game on either side of a trade quote.
// Catalog games are priced by GameID; ad-hoc games need Price.
type TradeItemInput struct {
	GameID    *uuid.UUID
	Price     *decimal.Decimal
	SalePrice *decimal.Decimal
	Quantity  int
}

// QuoteTradeInput represents the input for quoting a trade.
type QuoteTradeInput struct {
	GamesGiven    []TradeItemInput
	GamesReceived []TradeItemInput
}

// QuoteTradeOutput represents the output of quoting a trade.
type QuoteTradeOutput struct {
	GamesGiven    []valueobject.TradeGameValue
	GamesReceived []valueobject.TradeGameValue
	Valuation     valueobject.TradeValuation
	AmountDue     decimal.Decimal
}

// QuoteTradeUseCase handles trade valuations.
type QuoteTradeUseCase struct {
	gameRepo adapter.GameRepository
	policy   *valueobject.TradePolicy
}

// NewQuoteTradeUseCase creates a new QuoteTradeUseCase instance.
func NewQuoteTradeUseCase(gameRepo adapter.GameRepository, policy *valueobject.TradePolicy) *QuoteTradeUseCase {
	return &QuoteTradeUseCase{
		gameRepo: gameRepo,
		policy:   policy,
	}
}

// Execute values both sides at original price and settles the trade.
func (uc *QuoteTradeUseCase) Execute(ctx context.Context, input QuoteTradeInput) (*QuoteTradeOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	ids := make([]*uuid.UUID, 0, len(input.GamesGiven)+len(input.GamesReceived))
	for _, item := range input.GamesGiven {
		ids = append(ids, item.GameID)
	}
	for _, item := range input.GamesReceived {
		ids = append(ids, item.GameID)
	}

	games, err := loadGames(ctx, uc.gameRepo, uniqueIDs(ids...))
	if err != nil {
		return nil, err
	}

	given := resolveTradeItems(input.GamesGiven, games)
	received := resolveTradeItems(input.GamesReceived, games)

	valuation := uc.policy.Valuate(
		valueobject.CalculateGamesValue(given),
		valueobject.CalculateGamesValue(received),
	)

	return &QuoteTradeOutput{
		GamesGiven:    given,
		GamesReceived: received,
		Valuation:     valuation,
		AmountDue:     valuation.AmountDue(),
	}, nil
}

func resolveTradeItems(items []TradeItemInput, games map[uuid.UUID]*entity.Game) []valueobject.TradeGameValue {
	values := make([]valueobject.TradeGameValue, 0, len(items))
	for _, item := range items {
		value := valueobject.TradeGameValue{
			SalePrice: item.SalePrice,
			Quantity:  item.Quantity,
		}
		if item.GameID != nil {
			game := games[*item.GameID]
			value.GameID = game.ID.String()
			value.OriginalPrice = game.Price
			if game.IsOnSale {
				value.SalePrice = game.SalePrice
			}
		} else {
			value.OriginalPrice = *item.Price
		}
		values = append(values, value)
	}
	return values
}

// validateInput validates the input parameters.
func (uc *QuoteTradeUseCase) validateInput(input QuoteTradeInput) error {
	if len(input.GamesGiven) == 0 || len(input.GamesReceived) == 0 {
		return domainerror.NewPricingError(
			domainerror.ErrCodeEmptyLineItems,
			"a trade needs games on both sides",
			domainerror.ErrEmptyLineItems,
		)
	}

	for _, side := range [][]TradeItemInput{input.GamesGiven, input.GamesReceived} {
		for i, item := range side {
			if err := validateTradeItem(i, item); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateTradeItem(index int, item TradeItemInput) error {
	if item.Quantity < 1 {
		return domainerror.NewPricingError(
			domainerror.ErrCodeInvalidQuantity,
			fmt.Sprintf("invalid quantity on item %d", index),
			domainerror.ErrInvalidQuantity,
		)
	}
	if item.GameID == nil && item.Price == nil {
		return domainerror.NewPricingError(
			domainerror.ErrCodeMissingGamePrice,
			fmt.Sprintf("missing game on item %d", index),
			domainerror.ErrMissingGamePrice,
		)
	}
	if (item.Price != nil && item.Price.IsNegative()) || (item.SalePrice != nil && item.SalePrice.IsNegative()) {
		return domainerror.NewPricingError(
			domainerror.ErrCodeNegativePrice,
			fmt.Sprintf("invalid price on item %d", index),
			domainerror.ErrNegativePrice,
		)
	}
	return nil
}
