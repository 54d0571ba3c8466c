package model

import (
	"fmt"
	"strings"
)

// ValidationCode classifies a single assumption violation.
type ValidationCode string

const (
	ValidationMissingField   ValidationCode = "missing_field"
	ValidationOutOfRange     ValidationCode = "out_of_range"
	ValidationNotPositive    ValidationCode = "not_positive"
	ValidationLengthMismatch ValidationCode = "length_mismatch"
	ValidationUnknownRef     ValidationCode = "unknown_ref"
)

// ValidationError describes one violation found in the input assumptions.
// Validation collects every violation in a single pass rather than stopping
// at the first.
type ValidationError struct {
	Field   string         `json:"field"`
	Code    ValidationCode `json:"code"`
	Message string         `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// ValidationErrors is the full set of violations from one validation pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any violation was recorded for the given field.
func (e ValidationErrors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}
