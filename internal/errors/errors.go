// Package errors provides structured error handling for the bempot engine.
// It includes categorized errors with actionable remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error that occurred.
type Category int

const (
	// InvalidArgument errors are caused by values violating an option's or
	// operation's precondition (e.g. a non-positive thread count).
	InvalidArgument Category = iota
	// Configuration errors are caused by invalid or missing configuration files.
	Configuration
	// Assembly errors occur while assembling a potential operator.
	Assembly
	// Runtime errors occur during evaluation of a potential.
	Runtime
)

// String returns a human-readable name for the error category.
func (c Category) String() string {
	switch c {
	case InvalidArgument:
		return "Invalid Argument"
	case Configuration:
		return "Configuration Error"
	case Assembly:
		return "Assembly Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// EvalError is a structured error with category and remediation guidance.
type EvalError struct {
	// Category is the type of error (InvalidArgument, Configuration, etc.)
	Category Category
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for CLI argument errors).
	Usage string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return e.Message
}

// NewInvalidArgument creates a new invalid-argument error with the given
// message and remediation steps.
func NewInvalidArgument(message string, remediation ...string) *EvalError {
	return &EvalError{
		Category:    InvalidArgument,
		Message:     message,
		Remediation: remediation,
	}
}

// NewInvalidArgumentWithUsage creates an invalid-argument error that includes
// correct usage syntax.
func NewInvalidArgumentWithUsage(message, usage string, remediation ...string) *EvalError {
	return &EvalError{
		Category:    InvalidArgument,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, remediation ...string) *EvalError {
	return &EvalError{
		Category:    Configuration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewAssemblyError creates a new assembly error.
func NewAssemblyError(message string, remediation ...string) *EvalError {
	return &EvalError{
		Category:    Assembly,
		Message:     message,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(message string, remediation ...string) *EvalError {
	return &EvalError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with an EvalError, preserving the original message.
func Wrap(err error, category Category, remediation ...string) *EvalError {
	if err == nil {
		return nil
	}
	return &EvalError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category Category, message string, remediation ...string) *EvalError {
	if err == nil {
		return nil
	}
	return &EvalError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
	}
}

// IsInvalidArgument reports whether err is an EvalError with the
// InvalidArgument category.
func IsInvalidArgument(err error) bool {
	e := AsEvalError(err)
	return e != nil && e.Category == InvalidArgument
}

// AsEvalError attempts to convert an error to an EvalError.
// Returns nil if the error is not an EvalError.
func AsEvalError(err error) *EvalError {
	var e *EvalError
	if stderrors.As(err, &e) {
		return e
	}
	return nil
}
