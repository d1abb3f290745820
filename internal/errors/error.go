package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryUsage       Category = "usage"
	CategoryComputation Category = "computation"
	CategoryConfig      Category = "config"
	CategoryCLI         Category = "cli"
)

// ObservableError is a structured error with a code, explanation and hint.
type ObservableError struct {
	// Code is a unique error identifier (e.g., "O001").
	Code string

	// Category is the error type (usage, computation, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ObservableError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ObservableError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
// Errors without a code only match themselves.
func (e *ObservableError) Is(target error) bool {
	t, ok := target.(*ObservableError)
	if !ok {
		return false
	}
	if e.Code == "" || t.Code == "" {
		return e == t
	}
	return e.Code == t.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ObservableError) WithSuggestion(s string) *ObservableError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *ObservableError) WithExample(ex string) *ObservableError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ObservableError) WithDetail(d string) *ObservableError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted explanation to the error.
func (e *ObservableError) WithDetailf(format string, args ...any) *ObservableError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *ObservableError) Wrap(err error) *ObservableError {
	e.Wrapped = err
	return e
}

// New creates an ObservableError from a registered error code.
// Detail is left empty for per-occurrence context; Format falls back to the
// registered explanation.
func New(code string) *ObservableError {
	template, ok := registry[code]
	if !ok {
		return &ObservableError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ObservableError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new ObservableError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ObservableError {
	return &ObservableError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an ObservableError.
func FromError(err error, code string) *ObservableError {
	if err == nil {
		return nil
	}
	if oe, ok := err.(*ObservableError); ok {
		return oe
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err or any error it wraps carries code.
func HasCode(err error, code string) bool {
	var oe *ObservableError
	for err != nil {
		if !stderrors.As(err, &oe) {
			return false
		}
		if oe.Code == code {
			return true
		}
		err = oe.Wrapped
	}
	return false
}
