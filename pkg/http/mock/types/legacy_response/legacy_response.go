// Package legacy_response is the minimal writeHead/send/end response shape. Its status code stays
// unset until the first WriteHead or Send, and every mutation fails once End has been called.
package legacy_response

import (
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	mockErrors "github.com/Motmedel/http_mock_go/pkg/http/mock/errors"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/headers"
)

const StatusUnset = -1

type Response struct {
	StatusCode int

	headers   *headers.Headers
	data      strings.Builder
	endCalled bool
}

func New() *Response {
	return &Response{StatusCode: StatusUnset, headers: headers.New()}
}

func (response *Response) ended() error {
	if response.endCalled {
		return motmedelErrors.NewWithTrace(mockErrors.ErrEndAlreadyCalled)
	}
	return nil
}

// WriteHead sets the status code and merges fields into the headers.
func (response *Response) WriteHead(statusCode int, fields map[string]string) error {
	if err := response.ended(); err != nil {
		return err
	}

	response.StatusCode = statusCode
	for name, value := range fields {
		response.headers.Set(name, value)
	}

	return nil
}

func (response *Response) SetHeader(name string, value string) error {
	if err := response.ended(); err != nil {
		return err
	}
	response.headers.Set(name, value)
	return nil
}

// Send appends data to the body. The status code becomes 200 when it is still unset.
func (response *Response) Send(data string) error {
	if err := response.ended(); err != nil {
		return err
	}

	if response.StatusCode == StatusUnset {
		response.StatusCode = 200
	}
	response.data.WriteString(data)

	return nil
}

// End appends the optional data and marks the response as ended.
func (response *Response) End(data ...string) error {
	if err := response.ended(); err != nil {
		return err
	}

	for _, chunk := range data {
		response.data.WriteString(chunk)
	}
	response.endCalled = true

	return nil
}

func (response *Response) GetStatusCode() int {
	return response.StatusCode
}

func (response *Response) GetData() string {
	return response.data.String()
}

// GetHeaders returns a copy of the headers keyed by lower-cased name, multiple values joined by
// ", ".
func (response *Response) GetHeaders() map[string]string {
	fields := make(map[string]string, response.headers.Len())
	for name := range response.headers.Keys() {
		fields[name] = response.headers.Get(name)
	}
	return fields
}

func (response *Response) IsEndCalled() bool {
	return response.endCalled
}
