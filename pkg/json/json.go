package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
)

func DecodeJson[T any](reader io.Reader) (T, error) {
	var obj T

	data, err := io.ReadAll(reader)
	if err != nil {
		return obj, motmedelErrors.New(fmt.Errorf("io read all: %w", err))
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return obj, motmedelErrors.New(fmt.Errorf("json unmarshal: %w", err), data)
	}

	return obj, err
}

// Stringify returns the compact JSON text of object without HTML escaping or a trailing newline.
func Stringify(object any) (string, error) {
	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(object); err != nil {
		return "", motmedelErrors.NewWithTrace(fmt.Errorf("json encoder encode: %w", err), object)
	}

	return string(bytes.TrimSuffix(buffer.Bytes(), []byte("\n"))), nil
}

// Parse decodes JSON text into a generic value; objects become map[string]any and numbers float64.
func Parse(data []byte) (any, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, motmedelErrors.New(fmt.Errorf("json unmarshal: %w", err), data)
	}
	return value, nil
}

func ObjectToMap(object any) (map[string]any, error) {
	data, err := json.Marshal(object)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("json marshal: %w", err), object)
	}

	var objectMap map[string]any
	if err = json.Unmarshal(data, &objectMap); err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err), data)
	}

	return objectMap, nil
}
