// Package weberr defines the error taxonomy shared by handlers and stores.
//
// Handlers recover these at the boundary and map them to HTTP statuses;
// anything else is a dependency failure and surfaces as a generic 500 so
// no internal detail reaches the caller.
package weberr

import (
	"errors"
	"fmt"
)

var (
	// ErrPasswordMismatch is returned when a registration's password and
	// confirmation do not agree.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Login never reveals which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound means the target team does not exist.
	ErrNotFound = errors.New("team not found")

	// ErrForbidden means the caller's session does not own the target team.
	ErrForbidden = errors.New("forbidden")

	// ErrNoPayment means an approval was requested for a team whose record
	// predates the payment workflow and carries no payment block.
	ErrNoPayment = errors.New("team has no payment to approve")

	// ErrInvalidAction is an unrecognized payment action token.
	ErrInvalidAction = errors.New("invalid payment action")
)

// FieldError reports a missing or malformed required field with enough
// context for the caller to fix the request.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Field + " is required"
}

// Required builds a FieldError for an empty required field.
func Required(field string) *FieldError {
	return &FieldError{Field: field}
}

// Invalid builds a FieldError with an explanation.
func Invalid(field, msg string) *FieldError {
	return &FieldError{Field: field, Msg: msg}
}

// AsFieldError unwraps err into a *FieldError if it is one.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
