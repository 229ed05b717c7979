package errs

import "errors"

// Domain-specific sentinel errors for usecase layers
var (
	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCustomerNotFound = errors.New("customer not found")

	// Workflow errors
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConcurrentUpdate  = errors.New("concurrent booking update")
	ErrGuardFailed       = errors.New("transition guard failed")
	ErrPaymentPassword   = errors.New("payment password mismatch")

	// Document errors
	ErrTemplateNotFound = errors.New("template not found")
	ErrRenderFailed     = errors.New("render failed")
	ErrRenderTimeout    = errors.New("render deadline exceeded")
	ErrPageOutOfRange   = errors.New("page out of range")
	ErrNoDocument       = errors.New("no document for status")

	// Share token errors
	ErrTokenInvalid = errors.New("share token invalid")

	// Auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")

	// Number allocation errors
	ErrNumberAllocationExhausted = errors.New("number allocation exhausted")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
