package utils

import (
	"fmt"
	"reflect"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
)

// Convert asserts value to T. A nil interface never converts.
func Convert[T any](value any) (T, error) {
	convertedValue, ok := value.(T)
	if !ok {
		return convertedValue, motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: %T", motmedelErrors.ErrConversionNotOk, value),
			value,
		)
	}

	return convertedValue, nil
}

func IsNil(value any) bool {
	if value == nil {
		return true
	}

	switch reflectValue := reflect.ValueOf(value); reflectValue.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return reflectValue.IsNil()
	}
	return false
}
