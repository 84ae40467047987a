package strings

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// NOTE: Adapted from Go source code: log/slog/text_handler.go: byteSlice

func ByteSliceFromAny(a any) ([]byte, bool) {
	if bs, ok := a.([]byte); ok {
		return bs, true
	}
	t := reflect.TypeOf(a)
	if t != nil && t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return reflect.ValueOf(a).Bytes(), true
	}
	return nil, false
}

// MakeTextualRepresentation renders a value the way a header or log field would show it.
func MakeTextualRepresentation(value any) (string, error) {
	switch typedValue := value.(type) {
	case nil:
		return "", nil
	case string:
		return typedValue, nil
	case bool:
		return strconv.FormatBool(typedValue), nil
	case int:
		return strconv.Itoa(typedValue), nil
	case int64:
		return strconv.FormatInt(typedValue, 10), nil
	case int32:
		return strconv.FormatInt(int64(typedValue), 10), nil
	case uint:
		return strconv.FormatUint(uint64(typedValue), 10), nil
	case uint64:
		return strconv.FormatUint(typedValue, 10), nil
	case float64:
		return strconv.FormatFloat(typedValue, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(typedValue), 'f', -1, 32), nil
	case time.Time:
		return typedValue.Format(time.RFC3339), nil
	case fmt.Stringer:
		return typedValue.String(), nil
	default:
		if tm, ok := value.(encoding.TextMarshaler); ok {
			data, err := tm.MarshalText()
			if err != nil {
				return "", fmt.Errorf("marshal text: %w", err)
			}
			return string(data), nil
		}

		if bs, ok := ByteSliceFromAny(value); ok {
			return string(bs), nil
		}

		return fmt.Sprintf("%v", value), nil
	}
}
