// Package errors defines the error kinds unawareness reports when it cannot
// load its configuration or the necrodancer.xml document.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an Error.
type Code string

const (
	CodeIO     Code = "IO"     // opening or reading a file failed
	CodeSyntax Code = "SYNTAX" // the XML parser rejected the input
	CodeSchema Code = "SCHEMA" // a required element or attribute is missing or invalid
	CodeConfig Code = "CONFIG" // a required configuration value is missing
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Sentinels for errors.Is; matching compares codes only.
var (
	ErrIO     = &Error{Code: CodeIO}
	ErrSyntax = &Error{Code: CodeSyntax}
	ErrSchema = &Error{Code: CodeSchema}
	ErrConfig = &Error{Code: CodeConfig}
)

// Error is a classified error with a human-readable message and an optional
// underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. It returns nil when err is nil.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Schemaf reports a necrodancer.xml document that does not follow the
// expected layout.
func Schemaf(format string, args ...any) *Error {
	return Newf(CodeSchema, "malformed necrodancer.xml: "+format, args...)
}

// GetCode extracts the code from err, or "" when err carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
