// Package error defines domain-specific errors for the back office financial engine.
package error

import "errors"

// API-level errors not owned by a single domain.
var (
	// ErrRateLimited is returned when a client exceeds its request rate.
	ErrRateLimited = errors.New("too many requests")

	// ErrInvalidRequestBody is returned when a request body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
)

// APIErrorCode defines error codes raised by the HTTP layer itself.
// Format: API-XXYYYY where XX is category and YYYY is specific error.
type APIErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRequestBody APIErrorCode = "API-010001"

	// Throttling errors (02XXXX)
	ErrCodeRateLimited APIErrorCode = "API-020001"
)
