package maps

import (
	"fmt"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/utils"
)

func Get[K comparable, V any](m map[K]V, key K) (V, error) {
	var zero V

	if m == nil {
		return zero, motmedelErrors.NewWithTrace(motmedelErrors.ErrNilMap)
	}

	value, ok := m[key]
	if !ok {
		return zero, motmedelErrors.NewWithTrace(motmedelErrors.ErrNotInMap, key)
	}

	return value, nil
}

// GetConvert looks key up in m and asserts the value to T.
func GetConvert[T any, K comparable](m map[K]any, key K) (T, error) {
	var zero T

	value, err := Get(m, key)
	if err != nil {
		return zero, fmt.Errorf("get: %w", err)
	}

	convertedValue, err := utils.Convert[T](value)
	if err != nil {
		return zero, fmt.Errorf("convert: %w", err)
	}

	return convertedValue, nil
}
