// internal/models/errors.go
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable means the document store is unconfigured or unreachable.
	ErrStoreUnavailable = errors.New("database unavailable")

	// ErrStoreNotConfigured is returned before any I/O when no store is configured.
	ErrStoreNotConfigured = fmt.Errorf("%w: database not configured, please set up your database connection", ErrStoreUnavailable)

	// ErrDisconnected is returned by catalog mutations while the cached
	// connectivity state is not connected.
	ErrDisconnected = fmt.Errorf("%w: database is not connected", ErrStoreUnavailable)

	ErrNotFound        = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid product ID format")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrValidation      = errors.New("validation failed")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidQuantity = errors.New("quantity must be a whole number")
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Missing() {
		return "Missing required field: " + e.Field
	}
	if e.Message != "" {
		return e.Message
	}
	return "Invalid field: " + e.Field
}

// Missing reports whether the field was absent rather than malformed.
func (e *ValidationError) Missing() bool {
	return e.Tag == "required" || e.Tag == "notblank"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
