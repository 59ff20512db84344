package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested transition is not allowed in the current state.
var ErrConflict = errors.New("state conflict")

// ErrPrerequisite indicates that an operation lacks a required input.
var ErrPrerequisite = errors.New("missing prerequisite")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an infrastructure error with an HTTP-style code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// BalanceError is returned when the debit lines of an entry do not sum to its credit lines.
type BalanceError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("entry is unbalanced: total debit %s, total credit %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

func (e *BalanceError) Is(target error) bool { return target == ErrValidation }

// FormatError is returned when an account number does not match the format of an accounting standard.
type FormatError struct {
	AccountNumber string
	Standard      string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("account number %q does not match the %s account format", e.AccountNumber, e.Standard)
}

func (e *FormatError) Is(target error) bool { return target == ErrValidation }

// StateError is returned for an illegal lifecycle transition.
type StateError struct {
	EntryID string
	Status  string
	Action  string
}

func (e *StateError) Error() string {
	if e.Action == "cancel" && e.Status == "VALIDATED" {
		return fmt.Sprintf("cannot cancel validated entry %s: reverse it instead", e.EntryID)
	}
	return fmt.Sprintf("cannot %s entry %s in status %s", e.Action, e.EntryID, e.Status)
}

func (e *StateError) Is(target error) bool { return target == ErrConflict }

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError for the given resource kind and identifier.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// MissingPrerequisiteError is returned when a statement cannot be derived because an input is unavailable.
type MissingPrerequisiteError struct {
	Statement string
	Missing   string
}

func (e *MissingPrerequisiteError) Error() string {
	return fmt.Sprintf("cannot generate %s: %s is unavailable", e.Statement, e.Missing)
}

func (e *MissingPrerequisiteError) Is(target error) bool { return target == ErrPrerequisite }

// UnclassifiedAccountWarning reports a non-zero balance that matched no statement line.
// It is a diagnostic carried on generated statements, never returned as a failure.
type UnclassifiedAccountWarning struct {
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Statement     string          `json:"statement"`
}

func (w UnclassifiedAccountWarning) Error() string {
	return fmt.Sprintf("account %s (balance %s) matches no %s line", w.AccountNumber, w.Balance.String(), w.Statement)
}
