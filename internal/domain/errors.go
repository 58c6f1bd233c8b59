package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services, repositories and delivery.
//
// ErrEventNotFound, ErrMalformedDate and ErrMalformedTime are capitalized on
// purpose: their text is sent verbatim as the field message of a 400 response.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateSlug = errors.New("an event with this slug already exists")
	ErrEventNotFound = errors.New("Referenced event does not exist")
	ErrMalformedDate = errors.New("Date must be a valid date format")
	ErrMalformedTime = errors.New("Time must be in HH:MM or HH:MM AM/PM format")
	ErrUnauthorized  = errors.New("unauthorized")
)

// FieldError is a constraint violation on a single record field.
// It matches ErrInvalidInput through errors.Is.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Message }

// Is reports ErrInvalidInput so callers can treat every field violation alike.
func (e *FieldError) Is(target error) bool { return target == ErrInvalidInput }

// NewFieldError returns a FieldError for field with the given message.
func NewFieldError(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}
