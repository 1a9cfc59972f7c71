package payment

import "errors"

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrInvalidAmount      = errors.New("payment amount must be positive with at most 2 decimal places")
	ErrInvalidTransition  = errors.New("invalid payment status transition")
	ErrReasonRequired     = errors.New("reason is required")
	ErrSubscriptionClosed = errors.New("cannot record payment for a cancelled subscription")

	ErrConcurrentModification = errors.New("payment was modified concurrently")
)
