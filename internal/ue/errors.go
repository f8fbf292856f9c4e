package ue

import (
	"errors"
	"fmt"
)

// Error represents an input rejected at the boundary of the core.
//
// Errors include:
//   - Non-positive window, step or bin sizes
//   - A window longer than the recording span
//   - Mismatched neuron, unit-id or window counts
//   - Non-positive neuron, trial or tick-interval values
//   - Time or rate values in units that cannot be normalized
//
// An empty result (no significant windows, no coincidences) is never an error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the offending parameter, if any.
	Field string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes core errors.
type ErrorCode string

const (
	// ErrCodeInvalidParameter indicates a parameter outside its valid range.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"

	// ErrCodeUnitMismatch indicates a value whose unit cannot be normalized
	// to the analysis time base.
	ErrCodeUnitMismatch ErrorCode = "UNIT_MISMATCH"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidParameter returns true if err was raised for bad input.
// A unit mismatch is a kind of invalid parameter, so both codes match.
// Uses errors.As to handle wrapped errors.
func IsInvalidParameter(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeInvalidParameter || e.Code == ErrCodeUnitMismatch
	}
	return false
}

// IsUnitMismatch returns true if err was raised for an unnormalizable unit.
// Uses errors.As to handle wrapped errors.
func IsUnitMismatch(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeUnitMismatch
	}
	return false
}

// CodeOf returns the error code of err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// NewInvalidParameter creates an Error for a parameter outside its range.
func NewInvalidParameter(field, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidParameter,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// NewUnitMismatch creates an Error for a unit that cannot be normalized.
func NewUnitMismatch(field, unit string) *Error {
	return &Error{
		Code:    ErrCodeUnitMismatch,
		Message: fmt.Sprintf("unknown or incompatible unit %q", unit),
		Field:   field,
		Details: map[string]string{"unit": unit},
	}
}
