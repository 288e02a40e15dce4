package errors

import (
	stderrors "errors"
	"fmt"
)

// Type classifies a pipeline failure.
type Type string

const (
	// TypeIO covers missing, unreadable, or unwritable files.
	TypeIO Type = "IO"
	// TypeFormat covers unparseable spreadsheets and structurally absent
	// required columns.
	TypeFormat Type = "FORMAT"
	// TypeRender covers charting backend failures.
	TypeRender Type = "RENDER"
)

// PipelineError is the error type raised by pipeline stages on structural
// failure. Per-value malformation (bad amount, bad date, bad payment mode)
// is never an error; it degrades to a default and a validity flag instead.
type PipelineError struct {
	Type    Type
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair for diagnostics.
func (e *PipelineError) WithContext(key string, value interface{}) *PipelineError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a PipelineError of the given type.
func New(errType Type, message string, cause error) *PipelineError {
	return &PipelineError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewIOError creates a file-access error.
func NewIOError(message string, cause error) *PipelineError {
	return New(TypeIO, message, cause)
}

// NewFormatError creates a structural-format error.
func NewFormatError(message string, cause error) *PipelineError {
	return New(TypeFormat, message, cause)
}

// NewRenderError creates a chart-rendering error.
func NewRenderError(message string, cause error) *PipelineError {
	return New(TypeRender, message, cause)
}

// IsType reports whether err is (or wraps) a PipelineError of the given type.
func IsType(err error, errType Type) bool {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe.Type == errType
	}
	return false
}
