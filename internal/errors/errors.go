package errors

import (
	"errors"
	"fmt"
)

// Kind categorizes the deterministic input-data failures the analysis core
// can surface. These are never retried: the same input always fails the
// same way.
type Kind string

const (
	// KindInsufficientData - too few periods or assets to estimate covariance
	KindInsufficientData Kind = "INSUFFICIENT_DATA"

	// KindInvalidInput - missing or non-numeric values reached the estimator
	KindInvalidInput Kind = "INVALID_INPUT"

	// KindNegativeVariance - a non-PSD covariance matrix produced a negative
	// quadratic form beyond numerical tolerance
	KindNegativeVariance Kind = "NEGATIVE_VARIANCE"

	// KindDivisionByZero - a zero-volatility portfolio with zero excess return
	// has no defensible Sharpe ranking
	KindDivisionByZero Kind = "DIVISION_BY_ZERO"

	// KindConfiguration - invalid analysis configuration
	KindConfiguration Kind = "CONFIG"

	// KindData - a data-acquisition collaborator failed to produce a usable series
	KindData Kind = "DATA"
)

// AnalysisError is a categorized error with component and operation context.
type AnalysisError struct {
	Kind       Kind
	Component  string
	Operation  string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Kind, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Kind, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AnalysisError) Unwrap() error {
	return e.Underlying
}

// New creates a new categorized analysis error.
func New(kind Kind, component, operation, message string) *AnalysisError {
	return &AnalysisError{
		Kind:      kind,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// Newf creates a new categorized analysis error with a formatted message.
func Newf(kind Kind, component, operation, format string, args ...interface{}) *AnalysisError {
	return New(kind, component, operation, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with analysis error context. Returns nil for
// a nil error so call sites can wrap unconditionally.
func Wrap(err error, kind Kind, component, operation, message string) *AnalysisError {
	if err == nil {
		return nil
	}
	return &AnalysisError{
		Kind:       kind,
		Component:  component,
		Operation:  operation,
		Message:    message,
		Underlying: err,
	}
}

// KindOf extracts the Kind from an error chain; returns "" for errors that
// did not originate in the analysis core.
func KindOf(err error) Kind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsKind reports whether any error in the chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Convenience constructors for the core taxonomy.

func NewInsufficientDataError(component, operation, message string) *AnalysisError {
	return New(KindInsufficientData, component, operation, message)
}

func NewInvalidInputError(component, operation, message string) *AnalysisError {
	return New(KindInvalidInput, component, operation, message)
}

func NewNegativeVarianceError(component, operation string, variance float64) *AnalysisError {
	return Newf(KindNegativeVariance, component, operation,
		"quadratic form produced negative variance %g beyond tolerance", variance)
}

func NewDivisionByZeroError(component, operation, message string) *AnalysisError {
	return New(KindDivisionByZero, component, operation, message)
}

func NewConfigurationError(component, operation, message string) *AnalysisError {
	return New(KindConfiguration, component, operation, message)
}
