package empty_error

import "errors"

var ErrEmpty = errors.New("empty")

type Error struct {
	Field string
}

func (e *Error) Error() string {
	return "empty " + e.Field
}

func (e *Error) Is(target error) bool {
	return target == ErrEmpty
}

func New(field string) *Error {
	return &Error{Field: field}
}
