package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown content type or storage backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Payment Errors.

	// ErrPaymentRequestNotOpen indicates a payment request was already
	// paid, expired or cancelled and can no longer be resolved.
	ErrPaymentRequestNotOpen = errors.New("payment request is not open")

	// ErrUnknownPaymentProvider indicates a payment request named a
	// provider the backend does not know.
	ErrUnknownPaymentProvider = errors.New("unknown payment provider")
)
