// Package error defines domain-specific errors for the back office financial engine.
package error

import "errors"

// Pricing domain errors.
var (
	// ErrInvalidRentalDays is returned when a rental is quoted for less than one day.
	ErrInvalidRentalDays = errors.New("rental days must be at least 1")

	// ErrNegativePrice is returned when a price or fee is below zero.
	ErrNegativePrice = errors.New("price must not be negative")

	// ErrInvalidQuantity is returned when a line quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidDiscount is returned when a discount kind or value is not allowed.
	ErrInvalidDiscount = errors.New("discount must be a percentage between 0 and 100 or a non-negative fixed amount")

	// ErrEmptyLineItems is returned when a quote has no line items.
	ErrEmptyLineItems = errors.New("at least one item is required")

	// ErrGameNotFound is returned when a referenced catalog game does not exist.
	ErrGameNotFound = errors.New("game not found")

	// ErrMissingGamePrice is returned when neither a game id nor a price is provided.
	ErrMissingGamePrice = errors.New("either game_id or a price is required")

	// ErrEmptyRentalPlan is returned when a rental plan has no tiers.
	ErrEmptyRentalPlan = errors.New("rental plan must have at least one tier")

	// ErrRentalPlanNotCovering is returned when the last rental tier is bounded.
	ErrRentalPlanNotCovering = errors.New("rental plan must end with exactly one unbounded tier")

	// ErrRentalPlanOrder is returned when rental tiers are not strictly ascending.
	ErrRentalPlanOrder = errors.New("rental plan tiers must be ordered by ascending max days")

	// ErrInvalidFeeRate is returned when a rental fee rate is outside [0, 1].
	ErrInvalidFeeRate = errors.New("rental fee rate must be between 0 and 1")

	// ErrInvalidFeeTable is returned when the trade fee table is malformed.
	ErrInvalidFeeTable = errors.New("trade fee table must be ascending and end with exactly one unbounded bracket")
)

// PricingErrorCode defines error codes for pricing errors.
// Format: PRC-XXYYYY where XX is category and YYYY is specific error.
type PricingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRentalDays PricingErrorCode = "PRC-010001"
	ErrCodeNegativePrice     PricingErrorCode = "PRC-010002"
	ErrCodeInvalidQuantity   PricingErrorCode = "PRC-010003"
	ErrCodeInvalidDiscount   PricingErrorCode = "PRC-010004"
	ErrCodeEmptyLineItems    PricingErrorCode = "PRC-010005"
	ErrCodeMissingGamePrice  PricingErrorCode = "PRC-010006"
	ErrCodeInvalidRequest    PricingErrorCode = "PRC-010007"

	// Configuration errors (02XXXX)
	ErrCodeInvalidRentalPlan PricingErrorCode = "PRC-020001"
	ErrCodeInvalidFeeTable   PricingErrorCode = "PRC-020002"

	// Not found errors (04XXXX)
	ErrCodeGameNotFound PricingErrorCode = "PRC-040001"

	// Internal errors (99XXXX)
	ErrCodePricingInternalError PricingErrorCode = "PRC-990001"
)

// PricingError represents a pricing error with code and message.
type PricingError struct {
	Code    PricingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PricingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PricingError) Unwrap() error {
	return e.Err
}

// NewPricingError creates a new PricingError with the given code and message.
func NewPricingError(code PricingErrorCode, message string, err error) *PricingError {
	return &PricingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
