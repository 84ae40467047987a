package missing_error

import "errors"

var ErrMissing = errors.New("missing")

// Error reports a required argument or field that was not supplied.
type Error struct {
	Field string
}

func (e *Error) Error() string {
	return "missing " + e.Field
}

func (e *Error) Is(target error) bool {
	return target == ErrMissing
}

func New(field string) *Error {
	return &Error{Field: field}
}
