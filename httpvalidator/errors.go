package httpvalidator

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/erraggy/oasguard/internal/issues"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/schemaset"
)

// inputValidationMessage is the fixed top-level message of the JSON form.
const inputValidationMessage = "Input validation error"

// FormatOptions controls how NewInputValidationError shapes the records.
type FormatOptions struct {
	// Beautify renders each record as a human-readable message
	Beautify bool
	// FirstError keeps only the first record
	FirstError bool
}

// InputValidationError is returned when a request fails parameter or body
// validation. Parameter records come first, then body records.
//
// Exactly one of Errors and Messages is populated: Messages when the error
// was built with Beautify, Errors otherwise. The value must not be modified.
type InputValidationError struct {
	// Errors holds the raw records
	Errors []schemaset.Record
	// Messages holds one beautified message per record
	Messages []string
	// Beautify reports whether Messages was populated
	Beautify bool
	// FirstError reports whether the records were cut to the first one
	FirstError bool
}

// NewInputValidationError builds the default aggregate error.
// FirstError and Beautify compose: the first record is kept, then rendered.
// Beautify never changes the number of records.
func NewInputValidationError(errs []schemaset.Record, opts FormatOptions) *InputValidationError {
	if opts.FirstError && len(errs) > 1 {
		errs = errs[:1]
	}
	e := &InputValidationError{Beautify: opts.Beautify, FirstError: opts.FirstError}
	if opts.Beautify {
		e.Messages = issues.Messages(errs)
	} else {
		e.Errors = append([]schemaset.Record(nil), errs...)
	}
	return e
}

// Len returns the number of records carried by the error.
func (e *InputValidationError) Len() int {
	if e.Beautify {
		return len(e.Messages)
	}
	return len(e.Errors)
}

// Error returns a human-readable error message.
func (e *InputValidationError) Error() string {
	n := e.Len()
	if n == 0 {
		return "input validation error"
	}
	var first string
	if e.Beautify {
		first = e.Messages[0]
	} else {
		first = e.Errors[0].Beautify()
	}
	if n == 1 {
		return "input validation error: " + first
	}
	return fmt.Sprintf("input validation error: %s (and %d more)", first, n-1)
}

// Is reports whether target is oaserrors.ErrInputValidation.
func (e *InputValidationError) Is(target error) bool {
	return target == oaserrors.ErrInputValidation
}

// StatusCode returns the HTTP status a server should answer with.
func (e *InputValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// MarshalJSON renders {"message": "Input validation error", "errors": [...]},
// where errors holds the messages or the raw records.
func (e *InputValidationError) MarshalJSON() ([]byte, error) {
	var errs any = e.Errors
	if e.Beautify {
		errs = e.Messages
	}
	if e.Len() == 0 {
		errs = []any{}
	}
	return json.Marshal(struct {
		Message string `json:"message"`
		Errors  any    `json:"errors"`
	}{inputValidationMessage, errs})
}
