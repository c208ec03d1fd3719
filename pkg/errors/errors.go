// Package errors provides structured error types for the loadicator application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP surfaces
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - SCHEMA_*: malformed or incomplete input tables
//   - RANGE_*: a query outside the loaded table's domain
//   - VALIDATION_*: user-supplied input failing sanity rules
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRangeDraft, "draft %.2fm is outside valid range [%.2f, %.2f]m", d, min, max)
//	if errors.Is(err, errors.ErrCodeRangeDraft) {
//	    // Handle range error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSchemaBadValue, origErr, "sheet %q row %d", sheet, row)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Schema errors: the workbook cannot be turned into a valid table model.
	// These are fatal to the load operation; no partial table is returned.
	ErrCodeSchemaMissingSheet  Code = "SCHEMA_MISSING_SHEET"
	ErrCodeSchemaMissingColumn Code = "SCHEMA_MISSING_COLUMN"
	ErrCodeSchemaBadLabel      Code = "SCHEMA_BAD_LABEL"
	ErrCodeSchemaBadValue      Code = "SCHEMA_BAD_VALUE"
	ErrCodeSchemaBadTable      Code = "SCHEMA_BAD_TABLE"

	// Range errors: a lookup outside the table's domain. Values are never
	// clamped or extrapolated; the message carries the attempted value and
	// the valid bounds.
	ErrCodeRangeDraft        Code = "RANGE_DRAFT"
	ErrCodeRangeDisplacement Code = "RANGE_DISPLACEMENT"
	ErrCodeRangeAngle        Code = "RANGE_ANGLE"

	// Validation errors: user-supplied draft/KG fails pre-flight checks.
	ErrCodeValidation Code = "VALIDATION_INPUT"

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

// IsSchema reports whether err is any schema error.
func IsSchema(err error) bool {
	switch GetCode(err) {
	case ErrCodeSchemaMissingSheet, ErrCodeSchemaMissingColumn,
		ErrCodeSchemaBadLabel, ErrCodeSchemaBadValue, ErrCodeSchemaBadTable:
		return true
	}
	return false
}

// IsRange reports whether err is any range error.
func IsRange(err error) bool {
	switch GetCode(err) {
	case ErrCodeRangeDraft, ErrCodeRangeDisplacement, ErrCodeRangeAngle:
		return true
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return GetCode(err) == ErrCodeValidation
}
