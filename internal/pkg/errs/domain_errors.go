package errs

import "errors"

// Sentinels shared by the usecase and handler layers. Use Mark to attach one
// to a lower-level error so callers can branch with errs.Is.
var (
	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
	ErrInvalidFilter    = errors.New("invalid booking filter")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
