package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Inventory ledger errors
	ErrUnknownSKU  = errors.New("unknown sku")
	ErrOverRelease = errors.New("release exceeds reserved quantity")

	// Cart errors
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrEmptyCart        = errors.New("cart is empty")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is closed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
