// Package apperr defines the error taxonomy the graph engine reports to its
// callers: validation failures, missing records, graph-invariant conflicts,
// and opaque store failures. The three caller-fault kinds are always
// distinguishable; store failures wrap the underlying driver error unchanged.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed caller input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents a reference to an unknown record
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConflict represents an operation that would violate a graph invariant
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeStore represents an underlying storage failure
	ErrorTypeStore ErrorType = "store"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// ErrValidation is returned when caller input fails a model validation rule
type ErrValidation struct {
	*BaseError
	Field  string
	Reason string
}

func NewValidation(field, reason string) *ErrValidation {
	return &ErrValidation{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid %s: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrUserNotFound is returned when a referenced user id does not exist
type ErrUserNotFound struct {
	*BaseError
	UserID string
}

func NewUserNotFound(userID string) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("user not found: %s", userID), nil),
		UserID:    userID,
	}
}

// ErrConflict is returned when an operation violates a graph invariant given
// current state (deleting a connected user, re-linking an existing edge)
type ErrConflict struct {
	*BaseError
	Reason string
}

func NewConflict(reason string) *ErrConflict {
	return &ErrConflict{
		BaseError: NewBaseError(ErrorTypeConflict, reason, nil),
		Reason:    reason,
	}
}

// ErrStore is returned when the store fails; the driver error is wrapped
// unchanged so callers can still inspect it
type ErrStore struct {
	*BaseError
	Op string
}

func NewStore(op string, err error) *ErrStore {
	return &ErrStore{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("store operation failed: %s", op), err),
		Op:        op,
	}
}

// TypeOf returns the taxonomy type of err, or "" if err carries none
func TypeOf(err error) ErrorType {
	var (
		validation *ErrValidation
		notFound   *ErrUserNotFound
		conflict   *ErrConflict
		store      *ErrStore
		base       *BaseError
	)
	switch {
	case errors.As(err, &validation):
		return ErrorTypeValidation
	case errors.As(err, &notFound):
		return ErrorTypeNotFound
	case errors.As(err, &conflict):
		return ErrorTypeConflict
	case errors.As(err, &store):
		return ErrorTypeStore
	case errors.As(err, &base):
		return base.Type
	}
	return ""
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return TypeOf(err) == ErrorTypeConflict
}
