package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/backoffice/internal/application/usecase/pricing"
	"github.com/gamevault/backoffice/internal/domain/entity"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
	"github.com/gamevault/backoffice/internal/integration/entrypoint/dto"
)

func newPricingRouter(t *testing.T, games *mockGameRepository) *gin.Engine {
	t.Helper()
	plan, err := valueobject.NewRentalPlan(valueobject.DefaultRentalTiers(), 0)
	require.NoError(t, err)
	policy, err := valueobject.NewTradePolicy(valueobject.DefaultTradeFeeBrackets())
	require.NoError(t, err)

	ctrl := NewPricingController(
		pricing.NewQuoteRentalUseCase(games, plan),
		pricing.NewQuoteTradeUseCase(games, policy),
		pricing.NewQuoteOrderUseCase(games, decimal.NewFromInt(100), 0),
	)

	router := gin.New()
	group := router.Group("/api/v1/pricing")
	group.POST("/rental-quote", ctrl.QuoteRental)
	group.POST("/trade-quote", ctrl.QuoteTrade)
	group.POST("/order-quote", ctrl.QuoteOrder)
	return router
}

func post(router *gin.Engine, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPricingController_QuoteRental(t *testing.T) {
	t.Run("ad-hoc price", func(t *testing.T) {
		router := newPricingRouter(t, &mockGameRepository{})

		rec := post(router, "/api/v1/pricing/rental-quote", `{"game_price": 2000, "days": 7}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.RentalQuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 300.0, body.RentalFee)
		assert.Equal(t, 1700.0, body.Deposit)
		assert.Equal(t, 2000.0, body.TotalDue)
		assert.Equal(t, "weekly", body.AppliedPlan)
	})

	t.Run("catalog game", func(t *testing.T) {
		games := &mockGameRepository{}
		game := &entity.Game{ID: uuid.New(), Title: "Chrono Trigger", Price: decimal.NewFromInt(1000)}
		games.On("FindByID", mock.Anything, game.ID).Return(game, nil)
		router := newPricingRouter(t, games)

		rec := post(router, "/api/v1/pricing/rental-quote", `{"game_id": "`+game.ID.String()+`", "days": 2}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.RentalQuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Chrono Trigger", body.GameTitle)
		assert.Equal(t, 100.0, body.RentalFee)
	})

	t.Run("unknown game", func(t *testing.T) {
		games := &mockGameRepository{}
		games.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)
		router := newPricingRouter(t, games)

		rec := post(router, "/api/v1/pricing/rental-quote", `{"game_id": "`+uuid.NewString()+`", "days": 2}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeGameNotFound), decodeError(t, rec).Code)
	})

	t.Run("zero days", func(t *testing.T) {
		router := newPricingRouter(t, &mockGameRepository{})

		rec := post(router, "/api/v1/pricing/rental-quote", `{"game_price": 2000, "days": 0}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidRentalDays), decodeError(t, rec).Code)
	})

	t.Run("malformed game id", func(t *testing.T) {
		router := newPricingRouter(t, &mockGameRepository{})

		rec := post(router, "/api/v1/pricing/rental-quote", `{"game_id": "not-a-uuid", "days": 2}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidRequest), decodeError(t, rec).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newPricingRouter(t, &mockGameRepository{})

		rec := post(router, "/api/v1/pricing/rental-quote", `{"days": "seven"`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidRequestBody), decodeError(t, rec).Code)
	})
}

func TestPricingController_QuoteTrade(t *testing.T) {
	router := newPricingRouter(t, &mockGameRepository{})

	rec := post(router, "/api/v1/pricing/trade-quote", `{
		"games_given": [{"price": 1500, "quantity": 1}],
		"games_received": [{"price": 2000, "quantity": 1}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.TradeQuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "trade_up", body.TradeType)
	assert.Equal(t, 500.0, body.CashDifference)
	assert.Equal(t, 50.0, body.TradeFee)
	assert.Equal(t, 550.0, body.AmountDue)

	rec = post(router, "/api/v1/pricing/trade-quote", `{"games_given": [], "games_received": [{"price": 2000, "quantity": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPricingController_QuoteOrder(t *testing.T) {
	router := newPricingRouter(t, &mockGameRepository{})

	rec := post(router, "/api/v1/pricing/order-quote", `{
		"items": [{"unit_price": 1000, "quantity": 2}, {"unit_price": 999, "quantity": 1}],
		"discount": {"type": "fixed", "value": 300},
		"delivery_fee": 150
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.OrderQuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2999.0, body.Subtotal)
	assert.Equal(t, 300.0, body.Discount)
	assert.Equal(t, 2849.0, body.Total)
	require.Len(t, body.Items, 2)
	assert.Equal(t, 2000.0, body.Items[0].LineTotal)

	rec = post(router, "/api/v1/pricing/order-quote", `{"items": [{"unit_price": 10, "quantity": 1}], "discount": {"type": "percentage", "value": 150}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidDiscount), decodeError(t, rec).Code)
}
