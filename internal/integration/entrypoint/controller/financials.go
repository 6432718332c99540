package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/application/usecase/financials"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
	"github.com/gamevault/backoffice/internal/integration/entrypoint/dto"
)

const dateLayout = "2006-01-02"

// FinancialsController handles financial report endpoints.
type FinancialsController struct {
	getFinancialsUseCase *financials.GetFinancialsUseCase
	location             *time.Location
}

// NewFinancialsController creates a new financials controller instance.
// Dates without a zone are read in location.
func NewFinancialsController(getFinancialsUseCase *financials.GetFinancialsUseCase, location *time.Location) *FinancialsController {
	if location == nil {
		location = time.UTC
	}
	return &FinancialsController{
		getFinancialsUseCase: getFinancialsUseCase,
		location:             location,
	}
}

// GetFinancials handles GET /financials requests.
func (c *FinancialsController) GetFinancials(ctx *gin.Context) {
	input := financials.GetFinancialsInput{
		Granularity: financials.Granularity(ctx.Query("granularity")),
		Platform:    ctx.Query("platform"),
	}

	var ok bool
	if input.StartDate, ok = c.parseDate(ctx, "start_date"); !ok {
		return
	}
	if input.EndDate, ok = c.parseDate(ctx, "end_date"); !ok {
		return
	}
	if input.AsOf, ok = c.parseInstant(ctx, "as_of"); !ok {
		return
	}

	if raw := ctx.Query("operating_expenses"); raw != "" {
		opex, err := decimal.NewFromString(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "operating_expenses must be a number",
				Code:  string(domainerror.ErrCodeInvalidAmount),
			})
			return
		}
		input.OperatingExpenses = opex
	}

	if raw := ctx.Query("top"); raw != "" {
		top, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "top must be an integer",
				Code:  string(domainerror.ErrCodeInvalidTopGamesLimit),
			})
			return
		}
		input.TopGames = top
	}

	report, err := c.getFinancialsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFinancialsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialsResponse(report))
}

func (c *FinancialsController) parseDate(ctx *gin.Context, param string) (*time.Time, bool) {
	raw := ctx.Query(param)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, c.location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + param + " format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return nil, false
	}
	return &parsed, true
}

// parseInstant accepts RFC 3339 timestamps as well as plain dates.
// A plain date means the last instant of that day, so the whole day is included.
func (c *FinancialsController) parseInstant(ctx *gin.Context, param string) (*time.Time, bool) {
	raw := ctx.Query(param)
	if raw == "" {
		return nil, true
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, true
	}
	day, ok := c.parseDate(ctx, param)
	if !ok || day == nil {
		return day, ok
	}
	endOfDay := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &endOfDay, true
}

func (c *FinancialsController) handleFinancialsError(ctx *gin.Context, err error) {
	var finErr *domainerror.FinancialsError
	if errors.As(err, &finErr) {
		ctx.JSON(c.getStatusCodeForFinancialsError(finErr.Code), dto.ErrorResponse{
			Error: finErr.Message,
			Code:  string(finErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func (c *FinancialsController) getStatusCodeForFinancialsError(code domainerror.FinancialsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeIncompleteDateRange,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeNegativeOperatingExpenses,
		domainerror.ErrCodeInvalidTopGamesLimit,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeReportRangeTooWide:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
