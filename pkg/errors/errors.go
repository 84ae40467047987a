package errors

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var (
	ErrSyntaxError     = errors.New("syntax error")
	ErrSemanticError   = errors.New("semantic error")
	ErrConversionNotOk = errors.New("conversion not ok")
	ErrNilMap          = errors.New("nil map")
	ErrNotInMap        = errors.New("not in map")
)

func CollectWrappedErrors(err error) []error {
	var results []error

	queue := []error{err}

	for len(queue) > 0 {
		poppedErr := queue[0]
		queue = queue[1:]

		if poppedErr == nil {
			continue
		}

		if poppedErr != err {
			results = append(results, poppedErr)
		}

		switch typedErr := poppedErr.(type) {
		case interface{ Unwrap() error }:
			if unwrappedErr := typedErr.Unwrap(); unwrappedErr != nil {
				queue = append(queue, unwrappedErr)
			}
		case interface{ Unwrap() []error }:
			for _, unwrappedErr := range typedErr.Unwrap() {
				if unwrappedErr != nil {
					queue = append(queue, unwrappedErr)
				}
			}
		}
	}

	return results
}

func removeFunctionFromStackTrace(stackTrace, funcName string) string {
	lines := strings.Split(stackTrace, "\n")
	filtered := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		// The frame line is followed by its file/line line.
		if strings.HasPrefix(lines[i], funcName+"(") {
			i++
		} else {
			filtered = append(filtered, lines[i])
		}
	}
	return strings.Join(filtered, "\n")
}

func getFunctionName(f any) string {
	return runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
}

func CaptureStackTrace() string {
	buf := make([]byte, 64<<10)
	return strings.TrimSpace(
		removeFunctionFromStackTrace(string(buf[:runtime.Stack(buf, false)]), getFunctionName(CaptureStackTrace)),
	)
}

type InputErrorI interface {
	Error() string
	GetInput() any
}

type StackTraceErrorI interface {
	Error() string
	GetStackTrace() string
}

type CauseErrorI interface {
	Error() string
	GetCause() error
	Unwrap() error
}

// Error is a message-carrying error with an optional cause and the input that provoked it.
type Error struct {
	Message    string
	Cause      error
	Input      any
	StackTrace string
}

func (err *Error) Error() string {
	if err.Message == "" && err.Cause != nil {
		return err.Cause.Error()
	}
	return err.Message
}

func (err *Error) GetCause() error {
	return err.Cause
}

func (err *Error) GetInput() any {
	return err.Input
}

func (err *Error) GetStackTrace() string {
	return err.StackTrace
}

func (err *Error) Unwrap() error {
	return err.Cause
}

// ExtendedError decorates an existing error with input and an optional stack trace, keeping its message.
type ExtendedError struct {
	error
	Input      any
	StackTrace string
}

func (err *ExtendedError) GetInput() any {
	return err.Input
}

func (err *ExtendedError) GetStackTrace() string {
	return err.StackTrace
}

func (err *ExtendedError) Unwrap() error {
	return err.error
}

func New(e any, input ...any) *ExtendedError {
	var err error

	switch typedE := e.(type) {
	case error:
		err = typedE
	case string:
		err = errors.New(typedE)
	default:
		err = fmt.Errorf("%v", typedE)
	}

	var errInput any
	switch len(input) {
	case 0:
	case 1:
		errInput = input[0]
	default:
		errInput = input
	}

	return &ExtendedError{error: err, Input: errInput}
}

func NewWithTrace(e any, input ...any) *ExtendedError {
	extendedErr := New(e, input...)
	extendedErr.StackTrace = removeFunctionFromStackTrace(
		CaptureStackTrace(),
		getFunctionName(NewWithTrace),
	)

	return extendedErr
}
