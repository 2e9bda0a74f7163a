package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the structured error type for knowgrep.
// It carries enough context (path, underlying cause) for a caller
// to diagnose a failure without re-running in a debugger.
type Error struct {
	// Code is the unique error code (e.g., "ERR_201_INDEX_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with Error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// New creates a new Error with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates an Error from an existing error.
// The error's message becomes the Error message.
func Wrap(code string, err error) *Error {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// MissingIndex creates an error for a query against an absent index path.
func MissingIndex(path string, cause error) *Error {
	return New(ErrCodeIndexNotFound, fmt.Sprintf("no index found at %s", path), cause).
		WithDetail("path", path).
		WithSuggestion("run 'knowgrep index' first")
}

// CorruptIndex creates an error for an index artifact that fails to parse or validate.
func CorruptIndex(path string, cause error) *Error {
	return New(ErrCodeCorruptIndex, fmt.Sprintf("index at %s is unreadable or invalid", path), cause).
		WithDetail("path", path).
		WithSuggestion("rebuild with 'knowgrep index'")
}

// WriteFailure creates an error for a failed index persist.
func WriteFailure(path string, cause error) *Error {
	return New(ErrCodeWriteFailed, fmt.Sprintf("failed to write index to %s", path), cause).
		WithDetail("path", path)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *Error {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *Error {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *Error {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if ke, ok := err.(*Error); ok {
		return ke.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from an Error.
// Returns empty string if not an Error.
func GetCode(err error) string {
	if ke, ok := err.(*Error); ok {
		return ke.Code
	}
	return ""
}

// CodeOf extracts the error code from anywhere in an error chain.
// Returns empty string if no Error is found in the chain.
func CodeOf(err error) string {
	var ke *Error
	if stderrors.As(err, &ke) {
		return ke.Code
	}
	return ""
}

// GetCategory extracts the category from an Error.
// Returns empty string if not an Error.
func GetCategory(err error) Category {
	if ke, ok := err.(*Error); ok {
		return ke.Category
	}
	return ""
}
