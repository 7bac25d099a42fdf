// Package common defines shared constants and sentinel errors used across
// client and server layers of gophsession. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Storage write/read/quota failure. The operation that hit it is aborted.
	ErrPersistence = errors.New("persistence error")

	// Stored session state is inconsistent. Handled where it is detected by
	// clearing the session; never shown to the user.
	ErrCorruptedSession = errors.New("corrupted session")

	// The account service call failed or answered success=false.
	ErrService = errors.New("service error")

	// Input rejected before any network or storage call.
	ErrValidation = errors.New("validation error")

	// The operation is not permitted for the current session.
	ErrPolicy = errors.New("policy error")
)

// GenericServiceMessage is shown when the account service gave no message.
const GenericServiceMessage = "something went wrong, please try again later"

// ServiceError carries the message returned by the account service.
// It matches ErrService with errors.Is.
type ServiceError struct {
	Message string
	Err     error
}

// NewServiceError builds a ServiceError, falling back to the generic message
// when msg is empty.
func NewServiceError(msg string, err error) *ServiceError {
	if msg == "" {
		msg = GenericServiceMessage
	}
	return &ServiceError{Message: msg, Err: err}
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ValidationError describes a rejected input field.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Persistence wraps a storage failure so it matches ErrPersistence.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
