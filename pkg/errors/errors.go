// Package errors provides structured error types for kbgen.
//
// Every failure in the generation pipeline is fatal, so the codes here exist
// to give the CLI a stable classification and a user-facing message rather
// than to drive recovery:
//   - INVALID_*: input that cannot be turned into a keyboard or artifact
//   - KEYCODE_RANGE: a bound keycode outside [0, 255]
//   - FILE_NOT_FOUND: missing layout, config or template
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeKeycodeRange, "keycode %d out of range", code)
//	if errors.Is(err, errors.ErrCodeKeycodeRange) {
//	    // abort without writing an artifact
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSchema   Code = "INVALID_SCHEMA"
	ErrCodeInvalidKeycode  Code = "INVALID_KEYCODE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Range errors
	ErrCodeKeycodeRange Code = "KEYCODE_RANGE"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// For *Error types, returns the message without the code prefix, followed
// by the cause if there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
