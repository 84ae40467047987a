package nil_error

import "errors"

var ErrNil = errors.New("nil")

type Error struct {
	Field string
}

func (e *Error) Error() string {
	return "nil " + e.Field
}

func (e *Error) Is(target error) bool {
	return target == ErrNil
}

func New(field string) *Error {
	return &Error{Field: field}
}
