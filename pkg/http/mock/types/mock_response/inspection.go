package mock_response

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/http/content_encoding"
	mockErrors "github.com/Motmedel/http_mock_go/pkg/http/mock/errors"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
	motmedelJson "github.com/Motmedel/http_mock_go/pkg/json"
)

// Inspection exposes the recorded state of a response to tests. None of it exists on a real
// response.
type Inspection struct {
	response *Response
}

func (response *Response) Inspect() *Inspection {
	return &Inspection{response: response}
}

func (inspection *Inspection) IsEndCalled() bool {
	return inspection.response.ended
}

func (inspection *Inspection) IsFinished() bool {
	return inspection.response.finished
}

func (inspection *Inspection) Headers() map[string][]string {
	return inspection.response.headers.Map()
}

// Data returns the text accumulator.
func (inspection *Inspection) Data() string {
	return inspection.response.data.String()
}

// JSONData parses the text accumulator as JSON.
func (inspection *Inspection) JSONData() (any, error) {
	data := inspection.response.data.String()
	value, err := motmedelJson.Parse([]byte(data))
	if err != nil {
		return nil, motmedelErrors.New(fmt.Errorf("%w: json parse: %w", mockErrors.ErrNotJSON, err), data)
	}
	return value, nil
}

// Buffer returns the binary accumulator as one slice.
func (inspection *Inspection) Buffer() []byte {
	return bytes.Join(inspection.response.chunks, nil)
}

func (inspection *Inspection) Chunks() [][]byte {
	chunks := make([][]byte, len(inspection.response.chunks))
	for i, chunk := range inspection.response.chunks {
		chunks[i] = bytes.Clone(chunk)
	}
	return chunks
}

// DecodedBuffer returns the body with its Content-Encoding removed. The binary accumulator is the
// body when it is non-empty, the text accumulator otherwise.
func (inspection *Inspection) DecodedBuffer() ([]byte, error) {
	body := inspection.Buffer()
	if len(body) == 0 {
		body = []byte(inspection.Data())
	}

	contentEncoding := inspection.response.headers.Get("Content-Encoding")
	decoded, err := content_encoding.Decode(body, contentEncoding)
	if err != nil {
		return nil, fmt.Errorf("content encoding decode: %w", err)
	}

	return decoded, nil
}

func (inspection *Inspection) Locals() map[string]any {
	return maps.Clone(inspection.response.Locals)
}

func (inspection *Inspection) StatusCode() int {
	return inspection.response.StatusCode
}

func (inspection *Inspection) StatusMessage() string {
	return inspection.response.StatusMessage
}

func (inspection *Inspection) Encoding() string {
	return inspection.response.encoding
}

// IsJSON reports whether Content-Type is exactly "application/json".
func (inspection *Inspection) IsJSON() bool {
	return inspection.response.headers.Get("Content-Type") == "application/json"
}

func (inspection *Inspection) IsUTF8() bool {
	return inspection.response.encoding == "utf8"
}

// IsDataLengthValid compares Content-Length, when set, with the byte length of the text
// accumulator.
func (inspection *Inspection) IsDataLengthValid() bool {
	contentLength := strings.TrimSpace(inspection.response.headers.Get("Content-Length"))
	if contentLength == "" {
		return true
	}

	length, err := strconv.Atoi(contentLength)
	if err != nil {
		return false
	}

	return length == inspection.response.data.Len()
}

func (inspection *Inspection) RedirectURL() string {
	return inspection.response.redirectURL
}

func (inspection *Inspection) RenderView() string {
	return inspection.response.renderView
}

func (inspection *Inspection) RenderData() map[string]any {
	return maps.Clone(inspection.response.renderData)
}

func (inspection *Inspection) Cookies() map[string]*motmedelHttpTypes.Cookie {
	cookies := make(map[string]*motmedelHttpTypes.Cookie, len(inspection.response.cookies))
	for name, cookie := range inspection.response.cookies {
		cookies[name] = &motmedelHttpTypes.Cookie{Value: cookie.Value, Options: cookie.Options.Clone()}
	}
	return cookies
}

// CookieNames returns the recorded cookie names in sorted order.
func (inspection *Inspection) CookieNames() []string {
	return slices.Sorted(maps.Keys(inspection.response.cookies))
}
