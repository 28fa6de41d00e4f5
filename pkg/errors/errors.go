// Package errors provides structured error types for the initializr core.
//
// Errors fall into three classes, each handled differently by callers:
//   - Configuration errors (CONFIG_*): a malformed base or override catalog
//     document. Fatal at startup.
//   - Invalid request errors (UNKNOWN_*, INVALID_*, UNSUPPORTED_VERSION,
//     INCOMPATIBLE_DEPENDENCY): a project request that does not fit the
//     catalog. Reported to the caller, never retried.
//   - Refresh errors (NETWORK_ERROR, NOT_FOUND, INVALID_FEED): the version
//     feed could not be fetched or read. Logged and swallowed.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownDependency, "Unknown dependency '%s' check project metadata", id)
//	if errors.IsInvalidRequest(err) {
//	    // Translate into a client error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfigParse, origErr, "cannot merge %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeConfigInvalid Code = "CONFIG_INVALID"
	ErrCodeConfigParse   Code = "CONFIG_PARSE"

	// Invalid request errors
	ErrCodeInvalidInput            Code = "INVALID_INPUT"
	ErrCodeInvalidVersion          Code = "INVALID_VERSION"
	ErrCodeUnsupportedVersion      Code = "UNSUPPORTED_VERSION"
	ErrCodeUnknownType             Code = "UNKNOWN_TYPE"
	ErrCodeInvalidType             Code = "INVALID_TYPE"
	ErrCodeUnknownLanguage         Code = "UNKNOWN_LANGUAGE"
	ErrCodeUnknownPackaging        Code = "UNKNOWN_PACKAGING"
	ErrCodeUnknownDependency       Code = "UNKNOWN_DEPENDENCY"
	ErrCodeUnknownFrameworkVersion Code = "UNKNOWN_FRAMEWORK_VERSION"
	ErrCodeIncompatibleDependency  Code = "INCOMPATIBLE_DEPENDENCY"

	// Refresh errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeInvalidFeed Code = "INVALID_FEED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

var invalidRequestCodes = map[Code]bool{
	ErrCodeInvalidInput:            true,
	ErrCodeInvalidVersion:          true,
	ErrCodeUnsupportedVersion:      true,
	ErrCodeUnknownType:             true,
	ErrCodeInvalidType:             true,
	ErrCodeUnknownLanguage:         true,
	ErrCodeUnknownPackaging:        true,
	ErrCodeUnknownDependency:       true,
	ErrCodeUnknownFrameworkVersion: true,
	ErrCodeIncompatibleDependency:  true,
}

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

// IsInvalidRequest reports whether err rejects a project request, as
// opposed to a configuration or internal failure.
func IsInvalidRequest(err error) bool {
	return invalidRequestCodes[GetCode(err)]
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	code := GetCode(err)
	return code == ErrCodeConfigInvalid || code == ErrCodeConfigParse
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
