package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/application/adapter"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

// QuoteRentalInput represents the input for quoting a rental.
// Either GameID or GamePrice must be set; GameID wins when both are.
type QuoteRentalInput struct {
	GameID    *uuid.UUID
	GamePrice *decimal.Decimal
	Days      int
}

// QuoteRentalOutput represents the output of quoting a rental.
type QuoteRentalOutput struct {
	GameID    *uuid.UUID
	GameTitle string
	Quote     valueobject.RentalQuote
}

// QuoteRentalUseCase handles rental price quotes.
type QuoteRentalUseCase struct {
	gameRepo adapter.GameRepository
	plan     *valueobject.RentalPlan
}

// NewQuoteRentalUseCase creates a new QuoteRentalUseCase instance.
func NewQuoteRentalUseCase(gameRepo adapter.GameRepository, plan *valueobject.RentalPlan) *QuoteRentalUseCase {
	return &QuoteRentalUseCase{
		gameRepo: gameRepo,
		plan:     plan,
	}
}

// Execute prices a rental for the requested number of days.
func (uc *QuoteRentalUseCase) Execute(ctx context.Context, input QuoteRentalInput) (*QuoteRentalOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	output := &QuoteRentalOutput{GameID: input.GameID}

	var price decimal.Decimal
	if input.GameID != nil {
		game, err := uc.gameRepo.FindByID(ctx, *input.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
		if game == nil {
			return nil, domainerror.NewPricingError(
				domainerror.ErrCodeGameNotFound,
				fmt.Sprintf("game %s not found", *input.GameID),
				domainerror.ErrGameNotFound,
			)
		}
		price = game.Price
		output.GameTitle = game.Title
	} else {
		price = *input.GamePrice
	}

	output.Quote = uc.plan.Quote(price, input.Days)
	return output, nil
}

// validateInput validates the input parameters.
func (uc *QuoteRentalUseCase) validateInput(input QuoteRentalInput) error {
	if input.Days < 1 {
		return domainerror.NewPricingError(
			domainerror.ErrCodeInvalidRentalDays,
			fmt.Sprintf("invalid rental days %d", input.Days),
			domainerror.ErrInvalidRentalDays,
		)
	}

	if input.GameID == nil && input.GamePrice == nil {
		return domainerror.NewPricingError(
			domainerror.ErrCodeMissingGamePrice,
			"missing game",
			domainerror.ErrMissingGamePrice,
		)
	}

	if input.GameID == nil && input.GamePrice.IsNegative() {
		return domainerror.NewPricingError(
			domainerror.ErrCodeNegativePrice,
			"invalid game price",
			domainerror.ErrNegativePrice,
		)
	}

	return nil
}
