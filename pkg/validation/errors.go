package validation

import (
	"github.com/0xsj/overwatch-pkg/errors"
)

// CodeValidationFailed is the error code of a failed validation run.
const CodeValidationFailed errors.Code = "VALIDATION_FAILED"

// ErrValidationFailed is matched by every *FailedError.
var ErrValidationFailed = errors.New(errors.KindValidation, CodeValidationFailed, "validation failed")

// FailedError carries the result of a failed validation run.
type FailedError struct {
	Result Result
}

// NewFailedError returns a FailedError for a single field.
func NewFailedError(field, message string) *FailedError {
	return &FailedError{Result: Fail(field, message)}
}

func (e *FailedError) Error() string {
	if e.Result.Valid() {
		return "validation failed"
	}
	return "validation failed: " + e.Result.String()
}

func (e *FailedError) Unwrap() error { return ErrValidationFailed }
