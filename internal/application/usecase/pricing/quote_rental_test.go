package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/backoffice/internal/domain/entity"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

func newRentalUseCase(t *testing.T, repo *mockGameRepository) *QuoteRentalUseCase {
	t.Helper()
	plan, err := valueobject.NewRentalPlan(valueobject.DefaultRentalTiers(), valueobject.DefaultMoneyScale)
	require.NoError(t, err)
	return NewQuoteRentalUseCase(repo, plan)
}

func TestQuoteRentalUseCase_Execute(t *testing.T) {
	t.Run("ad-hoc price for a week", func(t *testing.T) {
		uc := newRentalUseCase(t, &mockGameRepository{})

		out, err := uc.Execute(context.Background(), QuoteRentalInput{GamePrice: decPtr("2000"), Days: 7})

		require.NoError(t, err)
		assert.True(t, d("300").Equal(out.Quote.RentalFee))
		assert.True(t, d("1700").Equal(out.Quote.Deposit))
		assert.True(t, d("2000").Equal(out.Quote.TotalDue))
		assert.Equal(t, "weekly", out.Quote.AppliedPlan)
	})

	t.Run("catalog game uses its base price", func(t *testing.T) {
		repo := &mockGameRepository{}
		game := &entity.Game{ID: uuid.New(), Title: "Chrono Trigger", Price: d("3000"), SalePrice: decPtr("2500"), IsOnSale: true}
		repo.On("FindByID", mock.Anything, game.ID).Return(game, nil)
		uc := newRentalUseCase(t, repo)

		out, err := uc.Execute(context.Background(), QuoteRentalInput{GameID: idPtr(game.ID), Days: 3})

		require.NoError(t, err)
		assert.Equal(t, "Chrono Trigger", out.GameTitle)
		assert.True(t, d("300").Equal(out.Quote.RentalFee))
		assert.Equal(t, "3-day", out.Quote.AppliedPlan)
		repo.AssertExpectations(t)
	})

	t.Run("unknown game", func(t *testing.T) {
		repo := &mockGameRepository{}
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)
		uc := newRentalUseCase(t, repo)

		_, err := uc.Execute(context.Background(), QuoteRentalInput{GameID: idPtr(id), Days: 3})

		assert.True(t, errors.Is(err, domainerror.ErrGameNotFound))
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		repo := &mockGameRepository{}
		dbErr := errors.New("db down")
		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, dbErr)
		uc := newRentalUseCase(t, repo)

		_, err := uc.Execute(context.Background(), QuoteRentalInput{GameID: idPtr(uuid.New()), Days: 3})

		assert.True(t, errors.Is(err, dbErr))
	})
}

func TestQuoteRentalUseCase_Validation(t *testing.T) {
	tests := []struct {
		name         string
		input        QuoteRentalInput
		expectedErr  error
		expectedCode domainerror.PricingErrorCode
	}{
		{
			name:         "zero days",
			input:        QuoteRentalInput{GamePrice: decPtr("2000"), Days: 0},
			expectedErr:  domainerror.ErrInvalidRentalDays,
			expectedCode: domainerror.ErrCodeInvalidRentalDays,
		},
		{
			name:         "negative days",
			input:        QuoteRentalInput{GamePrice: decPtr("2000"), Days: -3},
			expectedErr:  domainerror.ErrInvalidRentalDays,
			expectedCode: domainerror.ErrCodeInvalidRentalDays,
		},
		{
			name:         "no game and no price",
			input:        QuoteRentalInput{Days: 3},
			expectedErr:  domainerror.ErrMissingGamePrice,
			expectedCode: domainerror.ErrCodeMissingGamePrice,
		},
		{
			name:         "negative price",
			input:        QuoteRentalInput{GamePrice: decPtr("-1"), Days: 3},
			expectedErr:  domainerror.ErrNegativePrice,
			expectedCode: domainerror.ErrCodeNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newRentalUseCase(t, &mockGameRepository{})

			out, err := uc.Execute(context.Background(), tt.input)

			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.expectedErr))
			var pricingErr *domainerror.PricingError
			require.True(t, errors.As(err, &pricingErr))
			assert.Equal(t, tt.expectedCode, pricingErr.Code)
		})
	}
}
