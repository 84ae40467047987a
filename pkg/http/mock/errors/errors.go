package errors

import (
	"errors"

	"github.com/Motmedel/http_mock_go/pkg/http/ranges"
)

var (
	ErrEndAlreadyCalled   = errors.New("The end() method has already been called.")
	ErrRequestUnavailable = errors.New("request object unavailable")
	ErrUnsatisfiableRange = ranges.ErrUnsatisfiable
	ErrMalformedRange     = ranges.ErrMalformed
	ErrNotJSON            = errors.New("body is not json")
)
