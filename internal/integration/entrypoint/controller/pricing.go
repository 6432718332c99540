package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamevault/backoffice/internal/application/usecase/pricing"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
	"github.com/gamevault/backoffice/internal/integration/entrypoint/dto"
)

// PricingController handles price quote endpoints.
type PricingController struct {
	quoteRentalUseCase *pricing.QuoteRentalUseCase
	quoteTradeUseCase  *pricing.QuoteTradeUseCase
	quoteOrderUseCase  *pricing.QuoteOrderUseCase
}

// NewPricingController creates a new pricing controller instance.
func NewPricingController(
	quoteRentalUseCase *pricing.QuoteRentalUseCase,
	quoteTradeUseCase *pricing.QuoteTradeUseCase,
	quoteOrderUseCase *pricing.QuoteOrderUseCase,
) *PricingController {
	return &PricingController{
		quoteRentalUseCase: quoteRentalUseCase,
		quoteTradeUseCase:  quoteTradeUseCase,
		quoteOrderUseCase:  quoteOrderUseCase,
	}
}

// QuoteRental handles POST /pricing/rental-quote requests.
func (c *PricingController) QuoteRental(ctx *gin.Context) {
	var req dto.RentalQuoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input, err := req.ToQuoteRentalInput()
	if err != nil {
		invalidRequest(ctx, err)
		return
	}

	output, err := c.quoteRentalUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePricingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRentalQuoteResponse(output))
}

// QuoteTrade handles POST /pricing/trade-quote requests.
func (c *PricingController) QuoteTrade(ctx *gin.Context) {
	var req dto.TradeQuoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input, err := req.ToQuoteTradeInput()
	if err != nil {
		invalidRequest(ctx, err)
		return
	}

	output, err := c.quoteTradeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePricingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTradeQuoteResponse(output))
}

// QuoteOrder handles POST /pricing/order-quote requests.
func (c *PricingController) QuoteOrder(ctx *gin.Context) {
	var req dto.OrderQuoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input, err := req.ToQuoteOrderInput()
	if err != nil {
		invalidRequest(ctx, err)
		return
	}

	output, err := c.quoteOrderUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePricingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderQuoteResponse(output))
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidRequestBody),
			Details: err.Error(),
		})
		return false
	}
	return true
}

func invalidRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    string(domainerror.ErrCodeInvalidRequest),
		Details: err.Error(),
	})
}

func (c *PricingController) handlePricingError(ctx *gin.Context, err error) {
	var prcErr *domainerror.PricingError
	if errors.As(err, &prcErr) {
		ctx.JSON(c.getStatusCodeForPricingError(prcErr.Code), dto.ErrorResponse{
			Error: prcErr.Message,
			Code:  string(prcErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func (c *PricingController) getStatusCodeForPricingError(code domainerror.PricingErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidRentalDays,
		domainerror.ErrCodeNegativePrice,
		domainerror.ErrCodeInvalidQuantity,
		domainerror.ErrCodeInvalidDiscount,
		domainerror.ErrCodeEmptyLineItems,
		domainerror.ErrCodeMissingGamePrice,
		domainerror.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case domainerror.ErrCodeGameNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
