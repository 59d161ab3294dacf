// Package errors provides structured error types for blueprint.
//
// This package defines error codes and types that enable:
//   - Consistent failure reporting from the generator, CLI, and config loader
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Generation failures map onto four codes that callers are expected to
// branch on:
//   - INFEASIBLE_SPEC: area or instance-count constraints cannot be met
//     before any placement work begins
//   - PLACEMENT_FAILED: a room could not be carved into a non-degenerate
//     rectangle, or the free regions ran out
//   - ADJACENCY_UNSATISFIABLE: a declared adjacency has neither a direct edge
//     nor an accepted path
//   - ALLOCATION_FAILURE: a resource budget was exhausted mid-generation
//
// Everything else is an input or internal problem (INVALID_*, NOT_FOUND,
// INTERNAL_ERROR).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInfeasibleSpec, "requested %.1f exceeds footprint %.1f", want, have)
//	if errors.Is(err, errors.ErrCodeInfeasibleSpec) {
//	    // Handle infeasible input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Generation errors
	ErrCodeInfeasibleSpec         Code = "INFEASIBLE_SPEC"
	ErrCodePlacementFailed        Code = "PLACEMENT_FAILED"
	ErrCodeAdjacencyUnsatisfiable Code = "ADJACENCY_UNSATISFIABLE"
	ErrCodeAllocationFailure      Code = "ALLOCATION_FAILURE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsGenerationFailure reports whether err carries one of the four codes a
// generation run can fail with.
func IsGenerationFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeInfeasibleSpec, ErrCodePlacementFailed,
		ErrCodeAdjacencyUnsatisfiable, ErrCodeAllocationFailure:
		return true
	}
	return false
}
