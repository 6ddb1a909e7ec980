package simpay

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidAmount is returned when the amount is not positive
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrPaymentCancelled is returned when the context ends before approval
	ErrPaymentCancelled = errors.New("payment cancelled")
)
