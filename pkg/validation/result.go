// Package validation provides declarative request validators and the
// pipeline that runs them before dispatch.
package validation

import "strings"

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Result is the outcome of a validation run.
type Result struct {
	Errors []FieldError
}

// Success returns a Result with no errors.
func Success() Result {
	return Result{}
}

// Failure returns a Result holding errs.
func Failure(errs ...FieldError) Result {
	return Result{Errors: errs}
}

// Fail returns a Result with a single error.
func Fail(field, message string) Result {
	return Failure(FieldError{Field: field, Message: message})
}

// Valid reports whether the run produced no errors.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Field returns the errors reported for field.
func (r Result) Field(field string) []FieldError {
	var out []FieldError
	for _, e := range r.Errors {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

func (r Result) String() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
