package apperr

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// SchemaError reports an input file whose layout does not match what the
// evaluation expects.
type SchemaError struct {
	File     string
	Expected []string
	Err      error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "malformed input %s", e.File)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, " (expected columns: %s)", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func NewSchema(file string, expected []string, err error) *SchemaError {
	return &SchemaError{File: file, Expected: expected, Err: err}
}
