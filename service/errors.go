package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for lookups of catalog ids, ticket types or
// showing keys that do not exist. Past validation it indicates a defect,
// not something the buyer can correct.
var ErrNotFound = errors.New("not found")

// ErrSaleClosed is returned when an operation is attempted on a sale
// that is already committed or cancelled, or out of flow order.
var ErrSaleClosed = errors.New("sale is not open for this operation")

// InvalidInputError rejects buyer input for one named field. It is
// always user-correctable: the caller re-prompts and never terminates
// the flow because of it.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Field)
}

// ConflictError rejects a selection that clashes with current state,
// e.g. a seat that is already sold. The caller re-prompts for another.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

// IsInvalidInput reports whether the error is a user-correctable
// input rejection.
func IsInvalidInput(err error) bool {
	var invalid *InvalidInputError
	return errors.As(err, &invalid)
}

// IsConflict reports whether the error is a seat-taken style conflict.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
