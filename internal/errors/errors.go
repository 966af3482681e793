// Package errors defines the structured error type used around the
// annotation pipeline's file boundary. Failures inside the pipeline
// degrade to fallback annotations instead of errors; this type covers
// the operations before and after it (reading dumps, writing output).
package errors

import (
	"fmt"
	"time"
)

// ErrorType classifies a pipeline boundary error.
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// PipelineError represents a failure of one boundary operation with
// enough context to report it without a stack trace.
type PipelineError struct {
	Type        ErrorType
	FilePath    string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewInputError creates an input-side error with context
func NewInputError(op string, err error) *PipelineError {
	return newError(ErrorTypeInput, op, err)
}

// NewParseError creates a parse error with context
func NewParseError(op string, err error) *PipelineError {
	return newError(ErrorTypeParse, op, err)
}

// NewOutputError creates an output-side error with context
func NewOutputError(op string, err error) *PipelineError {
	return newError(ErrorTypeOutput, op, err)
}

// NewConfigError creates a configuration error with context
func NewConfigError(op string, err error) *PipelineError {
	return newError(ErrorTypeConfig, op, err)
}

func newError(t ErrorType, op string, err error) *PipelineError {
	return &PipelineError{
		Type:       t,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile adds file information to the error
func (e *PipelineError) WithFile(path string) *PipelineError {
	e.FilePath = path
	return e
}

// WithRecoverable marks the error as recoverable
func (e *PipelineError) WithRecoverable(recoverable bool) *PipelineError {
	e.Recoverable = recoverable
	return e
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.FilePath, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *PipelineError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable checks if the operation can be retried
func (e *PipelineError) IsRecoverable() bool {
	return e.Recoverable
}
