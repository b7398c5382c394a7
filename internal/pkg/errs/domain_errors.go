package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers.
// Concrete errors are marked with these via Mark and matched with errors.Is.
var (
	// Booking errors
	ErrValidation      = errors.New("validation failed")
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyPaid     = errors.New("booking already paid")

	// Payment verification errors
	ErrAmountMismatch        = errors.New("payment amount mismatch")
	ErrBookingMismatch       = errors.New("payment belongs to another booking")
	ErrPaymentNotCompleted   = errors.New("payment not completed")
	ErrPaymentAlreadyClaimed = errors.New("payment already claimed by another booking")
	ErrInvalidSignature      = errors.New("invalid webhook signature")

	// Provider errors
	ErrConfiguration   = errors.New("payment provider not configured")
	ErrProviderAuth    = errors.New("payment provider authentication failed")
	ErrProviderFailure = errors.New("payment provider request failed")

	// Access errors
	ErrForbidden   = errors.New("operation requires operator privileges")
	ErrRateLimited = errors.New("rate limit exceeded")

	// Operation errors
	ErrPersistence = errors.New("persistence operation failed")
)
