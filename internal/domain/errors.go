package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound               = errors.New("not found")
	ErrAlreadyExists          = errors.New("already exists")
	ErrValidation             = errors.New("validation error")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrConflict               = errors.New("conflict")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrCurrencyMismatch       = errors.New("currency mismatch")
	ErrInsufficientBalance    = errors.New("insufficient balance")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransitionError reports an operation attempted from a state that does not allow it.
type TransitionError struct {
	Entity    string
	ID        uuid.UUID
	Operation string
	From      string
}

func (e *TransitionError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("%s %s: cannot %s: %s", e.Entity, e.ID, e.Operation, ErrInvalidStateTransition)
	}
	return fmt.Sprintf("%s %s: cannot %s from status %q", e.Entity, e.ID, e.Operation, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidStateTransition }

// NewTransitionError creates a TransitionError.
func NewTransitionError(entity string, id uuid.UUID, operation, from string) *TransitionError {
	return &TransitionError{Entity: entity, ID: id, Operation: operation, From: from}
}

// CurrencyMismatchError carries the authoritative currency the caller should use.
type CurrencyMismatchError struct {
	Expected Currency
	Got      Currency
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *CurrencyMismatchError) Unwrap() error { return ErrCurrencyMismatch }

// InsufficientBalanceError carries the current balance and the amount required.
type InsufficientBalanceError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
	Currency Currency
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %s %s, need %s",
		e.Balance.StringFixed(2), e.Currency, e.Required.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }
