// Package error defines domain-specific errors for the back office financial engine.
package error

import "errors"

// Financials domain errors.
var (
	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")

	// ErrIncompleteDateRange is returned when only one side of the date range is provided.
	ErrIncompleteDateRange = errors.New("start_date and end_date must be provided together")

	// ErrInvalidGranularity is returned when granularity is not valid.
	ErrInvalidGranularity = errors.New("granularity must be: day, week, month, bi-annual, annual, or all")

	// ErrInvalidDateFormat is returned when a date parameter cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrNegativeOperatingExpenses is returned when operating expenses are below zero.
	ErrNegativeOperatingExpenses = errors.New("operating_expenses must not be negative")

	// ErrInvalidTopGamesLimit is returned when the top games limit is out of range.
	ErrInvalidTopGamesLimit = errors.New("top must be between 1 and 100")

	// ErrReportRangeTooWide is returned when the range splits into more periods than a report may hold.
	ErrReportRangeTooWide = errors.New("date range yields more than 3660 periods at this granularity")

	// ErrSnapshotUnavailable is returned when a source collection could not be read.
	ErrSnapshotUnavailable = errors.New("source records could not be loaded")
)

// FinancialsErrorCode defines error codes for financial report errors.
// Format: FIN-XXYYYY where XX is category and YYYY is specific error.
type FinancialsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateRange          FinancialsErrorCode = "FIN-010001"
	ErrCodeIncompleteDateRange       FinancialsErrorCode = "FIN-010002"
	ErrCodeInvalidGranularity        FinancialsErrorCode = "FIN-010003"
	ErrCodeInvalidDateFormat         FinancialsErrorCode = "FIN-010004"
	ErrCodeNegativeOperatingExpenses FinancialsErrorCode = "FIN-010005"
	ErrCodeInvalidTopGamesLimit      FinancialsErrorCode = "FIN-010006"
	ErrCodeInvalidAmount             FinancialsErrorCode = "FIN-010007"
	ErrCodeReportRangeTooWide        FinancialsErrorCode = "FIN-010008"

	// Internal errors (99XXXX)
	ErrCodeSnapshotUnavailable     FinancialsErrorCode = "FIN-990001"
	ErrCodeFinancialsInternalError FinancialsErrorCode = "FIN-990002"
)

// FinancialsError represents a financial report error with code and message.
type FinancialsError struct {
	Code    FinancialsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FinancialsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FinancialsError) Unwrap() error {
	return e.Err
}

// NewFinancialsError creates a new FinancialsError with the given code and message.
func NewFinancialsError(code FinancialsErrorCode, message string, err error) *FinancialsError {
	return &FinancialsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
