package usecase

import "fmt"

// Error taxonomy:
//   VALIDATION_ERROR - bad input, caught before any write
//   NOT_FOUND        - a referenced id is absent
//   STORE_ERROR      - persistence/transport failure on a primary write
// A failing secondary write (the derived meeting) is never surfaced as
// any of these; it is downgraded to a logged soft warning.

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStore      = "STORE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func NewNotFound(resource, id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

func NewStoreError(op string, err error) *TechnicalError {
	return &TechnicalError{
		Code:    CodeStore,
		Message: fmt.Sprintf("%s: %v", op, err),
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationFailed folds field errors into a single DomainError the
// handlers can map to a 400.
func NewValidationFailed(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: msg,
	}
}
