// Package shared contains common domain types and errors that are used across
// all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// Capacity errors
	ErrCapacity = errors.New("capacity exceeded")

	// Boundary errors
	ErrIO = errors.New("i/o failure")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "roster", "store"
	Op      string // Operation that failed, e.g., "Register", "Delete"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// UserMessage returns the human-readable part of err, suitable for printing
// to the console. Non-domain errors are returned as is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// Student domain errors
var (
	ErrInvalidStudentID   = NewDomainError("student", "Validate", ErrInvalidID, "invalid ID format: the ID should start with 'w' followed by 7 digits")
	ErrInvalidStudentName = NewDomainError("student", "Validate", ErrEmptyValue, "invalid student name: the name should not be empty or contain commas")
	ErrInvalidMarks       = NewDomainError("student", "Validate", ErrValueOutOfRange, "invalid marks: enter marks between 0 and 100")
)

// Roster domain errors
var (
	ErrStudentNotFound    = NewDomainError("roster", "Find", ErrNotFound, "student not found")
	ErrDuplicateStudentID = NewDomainError("roster", "Register", ErrAlreadyExists, "student ID already exists")
	ErrRosterFull         = NewDomainError("roster", "Register", ErrCapacity, "no available seats")
)

// Store errors
var (
	ErrNoData         = NewDomainError("store", "Load", ErrNotFound, "no data found to load")
	ErrNothingToStore = NewDomainError("store", "Save", ErrEmptyValue, "no student details to store")
	ErrMalformedLine  = NewDomainError("store", "Decode", ErrInvalidFormat, "malformed line")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsCapacity checks if the error is a capacity error.
func IsCapacity(err error) bool {
	return errors.Is(err, ErrCapacity)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsIO checks if the error happened at the persistence boundary.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}
