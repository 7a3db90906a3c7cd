// Package errors provides structured error types for bugmaker.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the generator, exporters and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Template problems are reported as schema violations: an expected labelled
// element, tag, text node or pivot is missing, or a pivot has an empty
// coordinate. They surface at construction time and are never retried.
//
// Protocol misuse (asking for the pivot label of something that is not a
// group) and removal misses get their own codes so callers can tell a broken
// template from a broken caller.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSchema, "no element labelled %q", label)
//	if errors.Is(err, errors.ErrCodeSchema) {
//	    // template is unusable
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRasterize, origErr, "rsvg-convert failed")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Template schema errors
	ErrCodeSchema        Code = "SCHEMA_VIOLATION"
	ErrCodePivotNotFound Code = "PIVOT_NOT_FOUND"
	ErrCodeMissingChild  Code = "MISSING_CHILD"

	// Caller errors
	ErrCodeProtocol      Code = "PROTOCOL_MISUSE"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Export errors
	ErrCodeRasterize Code = "RASTERIZE_FAILED"
	ErrCodeTimeout   Code = "TIMEOUT"

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

// Is reports whether any *Error in err's chain carries code, so a config
// error wrapping a format error matches both codes.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
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

// IsSchema reports whether err means the template itself is unusable.
// Batch callers use it to decide between aborting and skipping.
func IsSchema(err error) bool {
	switch GetCode(err) {
	case ErrCodeSchema, ErrCodePivotNotFound, ErrCodeMissingChild:
		return true
	}
	return false
}
