// Package apperr defines the error categories shared by the store and API
// layers. Handlers map them to HTTP statuses with errors.Is.
package apperr

import "errors"

var (
	// ErrInvalidDate marks a date string that cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrValidation marks a write request with missing or out-of-vocabulary fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a delete or update whose target row is absent.
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks a failed store operation.
	ErrPersistence = errors.New("persistence failure")
)
