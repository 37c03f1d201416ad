package errors

import (
	"errors"
	"fmt"
)

// ValidationError marks input that was rejected before any state mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// ConflictError marks an operation that was valid in shape but not admissible
// against current balances, such as an over-allocation or an unaffordable
// payment. No partial state is ever applied.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	return errors.As(err, &conflictError)
}

// PersistenceError wraps a failed durable write so callers can distinguish
// "your input was wrong" from "your change may not have saved".
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(key string, err error) error {
	return &PersistenceError{Key: key, Err: err}
}

func IsPersistenceError(err error) bool {
	var persistenceError *PersistenceError
	return errors.As(err, &persistenceError)
}

var (
	ErrFundNotFound        = NewValidationError("Fund not found")
	ErrCardNotFound        = NewValidationError("Credit card not found")
	ErrGoalNotFound        = NewValidationError("Savings goal not found")
	ErrTransactionNotFound = NewValidationError("Transaction not found")

	ErrGoalAlreadyReached       = NewConflictError("Goal already reached")
	ErrInsufficientUnallocated  = NewConflictError("Insufficient unallocated savings")
	ErrInvalidDeallocation      = NewValidationError("Invalid deallocation amount")
	ErrInvalidPaymentAmount     = NewValidationError("Payment amount must be positive and not exceed the card balance")
	ErrInsufficientSourceFunds  = NewConflictError("Payment source has insufficient funds")
	ErrExpenseRequiresTarget    = NewValidationError("Expense must specify a fund, a credit card, or explicitly target savings")
)
