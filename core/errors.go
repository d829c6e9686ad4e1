package core

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldError is a failed check on one input field, keyed by its JSON name.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries the cause of a rejected input and the fields it blames.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

// AsValidationError finds a ValidationError anywhere in err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fld := range err.Fields {
		msgs = append(msgs, fld.Field+": "+fld.Error)
	}
	return strings.Join(msgs, "; ")
}

func (err ValidationError) Unwrap() error { return err.Err }

// FieldMap is the field -> message view sent to API clients; nil without field errors.
func (err ValidationError) FieldMap() map[string]string {
	if len(err.Fields) == 0 {
		return nil
	}
	m := make(map[string]string, len(err.Fields))
	for _, fld := range err.Fields {
		m[fld.Field] = fld.Error
	}
	return m
}
