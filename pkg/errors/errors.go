// Package errors provides structured error types for the bino application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Flag and option validation failures
//   - BAD_*: Input data problems (headers, columns, weights)
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBins, "bin count must be at least %d, got %d", 6, n)
//	if errors.Is(err, errors.ErrCodeInvalidBins) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "cannot open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Flag and option validation errors
	ErrCodeInvalidFlag       Code = "INVALID_FLAG"
	ErrCodeInvalidBins       Code = "INVALID_BINS"
	ErrCodeInvalidRange      Code = "INVALID_RANGE"
	ErrCodeInvalidColors     Code = "INVALID_COLORS"
	ErrCodeInvalidDecimals   Code = "INVALID_DECIMALS"
	ErrCodeInvalidThresholds Code = "INVALID_THRESHOLDS"
	ErrCodeInvalidSlice      Code = "INVALID_SLICE"
	ErrCodeInvalidTransform  Code = "INVALID_TRANSFORM"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Input data errors
	ErrCodeBadHeader      Code = "BAD_HEADER"
	ErrCodeBadColumn      Code = "BAD_COLUMN"
	ErrCodeBadWeights     Code = "BAD_WEIGHTS"
	ErrCodeLengthMismatch Code = "LENGTH_MISMATCH"
	ErrCodeEmptySelection Code = "EMPTY_SELECTION"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeDatasetNotFound Code = "DATASET_NOT_FOUND"

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

// coder is satisfied by error types that carry their own code, such as
// RowError.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
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

// RowError reports a problem with a specific row of an input file.
type RowError struct {
	Path    string // Input file path as given by the user
	Line    int    // 1-based line number in the file
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Code returns the error code for this error type.
func (e *RowError) Code() Code {
	return ErrCodeBadColumn
}
