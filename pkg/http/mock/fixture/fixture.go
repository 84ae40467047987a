// Package fixture loads mock request and response configurations from YAML documents.
package fixture

import (
	"fmt"
	"mime"
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_request/mock_request_config"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_response/mock_response_config"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing"
	motmedelJson "github.com/Motmedel/http_mock_go/pkg/json"
	"gopkg.in/yaml.v3"
)

// FieldValues holds the values of a header field, written in YAML as a scalar or a sequence.
type FieldValues []string

func (fieldValues *FieldValues) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*fieldValues = FieldValues{value.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := value.Decode(&values); err != nil {
			return fmt.Errorf("yaml node decode: %w", err)
		}
		*fieldValues = values
		return nil
	}

	return fmt.Errorf("header values at line %d: expected a scalar or a sequence", value.Line)
}

type Request struct {
	Method        string                 `yaml:"method"`
	URL           string                 `yaml:"url"`
	OriginalURL   string                 `yaml:"originalUrl"`
	BaseURL       string                 `yaml:"baseUrl"`
	Path          string                 `yaml:"path"`
	Protocol      string                 `yaml:"protocol"`
	Params        map[string]any         `yaml:"params"`
	Session       map[string]any         `yaml:"session"`
	Cookies       map[string]string      `yaml:"cookies"`
	SignedCookies map[string]string      `yaml:"signedCookies"`
	Headers       map[string]FieldValues `yaml:"headers"`
	Body          map[string]any         `yaml:"body"`
	Query         map[string]any         `yaml:"query"`
	Files         map[string]any         `yaml:"files"`
	IP            string                 `yaml:"ip"`
	Extra         map[string]any         `yaml:"extra"`
}

// Options returns the configuration options for the fields present in the document.
func (request *Request) Options() []mock_request_config.Option {
	if request == nil {
		return nil
	}

	var options []mock_request_config.Option
	if request.Method != "" {
		options = append(options, mock_request_config.WithMethod(request.Method))
	}
	if request.URL != "" {
		options = append(options, mock_request_config.WithURL(request.URL))
	}
	if request.OriginalURL != "" {
		options = append(options, mock_request_config.WithOriginalURL(request.OriginalURL))
	}
	if request.BaseURL != "" {
		options = append(options, mock_request_config.WithBaseURL(request.BaseURL))
	}
	if request.Path != "" {
		options = append(options, mock_request_config.WithPath(request.Path))
	}
	if request.Protocol != "" {
		options = append(options, mock_request_config.WithProtocol(request.Protocol))
	}
	if request.Params != nil {
		options = append(options, mock_request_config.WithParams(request.Params))
	}
	if request.Session != nil {
		options = append(options, mock_request_config.WithSession(request.Session))
	}
	if request.Cookies != nil {
		options = append(options, mock_request_config.WithCookies(request.Cookies))
	}
	if request.SignedCookies != nil {
		options = append(options, mock_request_config.WithSignedCookies(request.SignedCookies))
	}
	for name, values := range request.Headers {
		options = append(options, mock_request_config.WithHeader(name, values...))
	}
	if request.Body != nil {
		options = append(options, mock_request_config.WithBody(request.Body))
	}
	if request.Query != nil {
		options = append(options, mock_request_config.WithQuery(request.Query))
	}
	if request.Files != nil {
		options = append(options, mock_request_config.WithFiles(request.Files))
	}
	if request.IP != "" {
		options = append(options, mock_request_config.WithIP(request.IP))
	}
	if request.Extra != nil {
		options = append(options, mock_request_config.WithExtra(request.Extra))
	}

	return options
}

type Response struct {
	Locals map[string]any `yaml:"locals"`
}

func (response *Response) Options() []mock_response_config.Option {
	if response == nil || response.Locals == nil {
		return nil
	}
	return []mock_response_config.Option{mock_response_config.WithLocals(response.Locals)}
}

// Fixture is a document with an optional request and response section.
type Fixture struct {
	Request  *Request  `yaml:"request"`
	Response *Response `yaml:"response"`
}

func Load(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, motmedelErrors.New(fmt.Errorf("yaml unmarshal: %w", err), data)
	}
	return &fixture, nil
}

// LoadRequest reads a document holding only request fields.
func LoadRequest(data []byte) ([]mock_request_config.Option, error) {
	var request Request
	if err := yaml.Unmarshal(data, &request); err != nil {
		return nil, motmedelErrors.New(fmt.Errorf("yaml unmarshal: %w", err), data)
	}
	return request.Options(), nil
}

// LoadRawRequest reads an HTTP/1.x request message. A JSON or URL-encoded form body becomes the
// request body; other bodies are ignored.
func LoadRawRequest(data []byte) ([]mock_request_config.Option, error) {
	httpRequest, err := parsing.ParseRequestData(data)
	if err != nil {
		return nil, fmt.Errorf("parse request data: %w", err)
	}
	defer httpRequest.Body.Close()

	options := []mock_request_config.Option{
		mock_request_config.WithMethod(httpRequest.Method),
		mock_request_config.WithURL(httpRequest.RequestURI),
	}
	if httpRequest.Host != "" {
		options = append(options, mock_request_config.WithHeader("Host", httpRequest.Host))
	}
	for name, values := range httpRequest.Header {
		options = append(options, mock_request_config.WithHeader(name, values...))
	}

	if httpCookies := httpRequest.Cookies(); len(httpCookies) > 0 {
		cookies := make(map[string]string, len(httpCookies))
		for _, cookie := range httpCookies {
			cookies[cookie.Name] = cookie.Value
		}
		options = append(options, mock_request_config.WithCookies(cookies))
	}

	mediaType, _, _ := mime.ParseMediaType(httpRequest.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		body, err := motmedelJson.DecodeJson[map[string]any](httpRequest.Body)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		options = append(options, mock_request_config.WithBody(body))
	case mediaType == "application/x-www-form-urlencoded":
		if err := httpRequest.ParseForm(); err != nil {
			return nil, motmedelErrors.New(fmt.Errorf("http request parse form: %w", err))
		}
		body := make(map[string]any, len(httpRequest.PostForm))
		for name, values := range httpRequest.PostForm {
			if len(values) == 1 {
				body[name] = values[0]
			} else {
				body[name] = values
			}
		}
		options = append(options, mock_request_config.WithBody(body))
	}

	return options, nil
}
