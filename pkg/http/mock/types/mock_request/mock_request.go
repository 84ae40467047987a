// Package mock_request provides an in-memory stand-in for an incoming framework request.
package mock_request

import (
	"fmt"
	"log/slog"
	"maps"
	"net"
	"net/url"
	"slices"
	"strings"
	"sync"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/errors/types/missing_error"
	"github.com/Motmedel/http_mock_go/pkg/event"
	"github.com/Motmedel/http_mock_go/pkg/http/caching"
	"github.com/Motmedel/http_mock_go/pkg/http/mime"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/headers"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_request/mock_request_config"
	"github.com/Motmedel/http_mock_go/pkg/http/negotiation"
	"github.com/Motmedel/http_mock_go/pkg/http/ranges"
	"github.com/Motmedel/http_mock_go/pkg/http/ranges/ranges_config"
	"github.com/Motmedel/http_mock_go/pkg/http/type_is"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
	motmedelLog "github.com/Motmedel/http_mock_go/pkg/log"
	motmedelLogError "github.com/Motmedel/http_mock_go/pkg/log/error"
	"github.com/Motmedel/http_mock_go/pkg/utils"
	"github.com/google/uuid"
)

const defaultSubdomainOffset = 2

// ResponseView is the part of a response that request freshness depends on.
type ResponseView interface {
	FreshnessValidators() (int, *caching.Validators)
}

type Request struct {
	*event.Emitter

	ID uuid.UUID

	Method        string
	URL           string
	OriginalURL   string
	BaseURL       string
	Params        map[string]any
	Session       map[string]any
	Cookies       map[string]string
	SignedCookies map[string]string
	Headers       *headers.Headers
	Body          map[string]any
	Query         map[string]any
	Files         map[string]any
	IP            string
	IPs           []string

	Logger *slog.Logger

	path       string
	protocol   string
	properties map[string]any
	response   ResponseView

	streamMu   sync.Mutex
	streamDone bool
}

func parseQuery(rawURL string) map[string]any {
	query := make(map[string]any)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return query
	}

	for key, values := range parsedURL.Query() {
		switch len(values) {
		case 0:
		case 1:
			query[key] = values[0]
		default:
			query[key] = values
		}
	}

	return query
}

func New(options ...mock_request_config.Option) *Request {
	config := mock_request_config.New(options...)

	request := &Request{
		Emitter:       event.New(),
		ID:            uuid.New(),
		Method:        config.Method,
		URL:           config.URL,
		OriginalURL:   config.OriginalURL,
		BaseURL:       config.BaseURL,
		Params:        config.Params,
		Session:       config.Session,
		Cookies:       config.Cookies,
		SignedCookies: config.SignedCookies,
		Headers:       headers.FromHTTPHeader(config.Headers),
		Body:          config.Body,
		Query:         config.Query,
		Files:         config.Files,
		IP:            config.IP,
		path:          config.Path,
		protocol:      config.Protocol,
		properties:    maps.Clone(config.Extra),
	}

	if request.OriginalURL == "" {
		request.OriginalURL = request.URL
	}
	if request.BaseURL == "" {
		request.BaseURL = request.URL
	}
	if request.Params == nil {
		request.Params = make(map[string]any)
	}
	if request.Cookies == nil {
		request.Cookies = make(map[string]string)
	}
	if request.Body == nil {
		request.Body = make(map[string]any)
	}
	if request.Query == nil {
		request.Query = parseQuery(request.URL)
	}
	if request.Files == nil {
		request.Files = make(map[string]any)
	}
	if request.properties == nil {
		request.properties = make(map[string]any)
	}
	request.IPs = []string{request.IP}

	request.Logger = motmedelLog.OrDiscard(config.Logger).With(
		slog.Group("http", slog.Group("request", slog.String("id", request.ID.String()))),
	)

	return request
}

// Header returns the value of a request header field. An absent field yields "".
func (request *Request) Header(name string) string {
	return request.Headers.Get(name)
}

func (request *Request) Get(name string) string {
	return request.Headers.Get(name)
}

// SetResponse links the response whose status and validators Fresh evaluates.
func (request *Request) SetResponse(response ResponseView) {
	request.response = response
}

// Path returns the configured path or, when none was configured, the path of the current URL.
func (request *Request) Path() string {
	if request.path != "" {
		return request.path
	}

	parsedURL, err := url.Parse(request.URL)
	if err != nil {
		return ""
	}
	return parsedURL.Path
}

// Protocol returns the configured protocol, the scheme of an absolute URL, or "http".
func (request *Request) Protocol() string {
	if request.protocol != "" {
		return strings.ToLower(request.protocol)
	}

	if parsedURL, err := url.Parse(request.URL); err == nil && parsedURL.Scheme != "" {
		return strings.ToLower(parsedURL.Scheme)
	}

	return "http"
}

func (request *Request) Secure() bool {
	return request.Protocol() == "https"
}

// Host returns the Host field, falling back to the host of an absolute URL.
func (request *Request) Host() string {
	if host := request.Headers.Get("Host"); host != "" {
		return host
	}

	if parsedURL, err := url.Parse(request.URL); err == nil {
		return parsedURL.Host
	}

	return ""
}

// Hostname returns Host without its port. Bracketed IPv6 literals keep their brackets.
func (request *Request) Hostname() string {
	host := request.Host()
	if host == "" {
		return ""
	}

	offset := 0
	if strings.HasPrefix(host, "[") {
		offset = strings.Index(host, "]") + 1
	}

	if index := strings.Index(host[offset:], ":"); index != -1 {
		return host[:offset+index]
	}

	return host
}

// Subdomains returns the labels of the hostname in reverse order, without the top two.
func (request *Request) Subdomains() []string {
	hostname := request.Hostname()
	if hostname == "" {
		return []string{}
	}

	var labels []string
	if net.ParseIP(hostname) != nil {
		labels = []string{hostname}
	} else {
		labels = strings.Split(hostname, ".")
		slices.Reverse(labels)
	}

	if len(labels) <= defaultSubdomainOffset {
		return []string{}
	}
	return labels[defaultSubdomainOffset:]
}

func (request *Request) XHR() bool {
	return strings.EqualFold(request.Headers.Get("X-Requested-With"), "XMLHttpRequest")
}

// Fresh reports whether the linked response is still fresh for this request's conditional fields.
// It is false without a linked response.
func (request *Request) Fresh() bool {
	if request.Method != "GET" && request.Method != "HEAD" {
		return false
	}
	if request.response == nil {
		return false
	}

	statusCode, validators := request.response.FreshnessValidators()
	if (statusCode < 200 || statusCode >= 300) && statusCode != 304 {
		return false
	}

	return caching.Fresh(
		&caching.Conditions{
			IfModifiedSince: request.Headers.Get("If-Modified-Since"),
			IfNoneMatch:     request.Headers.Get("If-None-Match"),
			CacheControl:    request.Headers.Get("Cache-Control"),
		},
		validators,
	)
}

func (request *Request) Stale() bool {
	return !request.Fresh()
}

func (request *Request) negotiator() *negotiation.Negotiator {
	return &negotiation.Negotiator{
		Accept:         request.Headers.Get("Accept"),
		AcceptEncoding: request.Headers.Get("Accept-Encoding"),
		AcceptCharset:  request.Headers.Get("Accept-Charset"),
		AcceptLanguage: request.Headers.Get("Accept-Language"),
	}
}

func first(preferences []string, err error, field string, logger *slog.Logger) (string, bool) {
	if err != nil {
		motmedelLogError.LogDebug(
			"The request field could not be negotiated.",
			fmt.Errorf("negotiate (%s): %w", field, err),
			logger,
		)
		return "", false
	}
	if len(preferences) == 0 {
		return "", false
	}
	return preferences[0], true
}

func extensionToMediaType(offer string) string {
	if strings.Contains(offer, "/") {
		return offer
	}
	mediaType, _ := mime.Lookup(offer)
	return mediaType
}

// Accepts returns the offer that best matches the Accept field. Offers may be media types or
// extensions; the matching offer is returned as given. Without an Accept field the first offer is
// returned. Without offers the most preferred accepted type is returned.
func (request *Request) Accepts(offers ...string) (string, bool) {
	negotiator := request.negotiator()

	if len(offers) == 0 {
		preferences, err := negotiator.MediaTypes()
		return first(preferences, err, "Accept", request.Logger)
	}

	if strings.TrimSpace(negotiator.Accept) == "" {
		return offers[0], true
	}

	mediaTypes := make([]string, len(offers))
	var validMediaTypes []string
	for i, offer := range offers {
		mediaTypes[i] = extensionToMediaType(offer)
		if mediaTypes[i] != "" {
			validMediaTypes = append(validMediaTypes, mediaTypes[i])
		}
	}
	if len(validMediaTypes) == 0 {
		return "", false
	}

	preferences, err := negotiator.MediaTypes(validMediaTypes...)
	mediaType, ok := first(preferences, err, "Accept", request.Logger)
	if !ok {
		return "", false
	}

	return offers[slices.Index(mediaTypes, mediaType)], true
}

func (request *Request) AcceptsEncodings(offers ...string) (string, bool) {
	preferences, err := request.negotiator().Encodings(offers...)
	return first(preferences, err, "Accept-Encoding", request.Logger)
}

func (request *Request) AcceptsCharsets(offers ...string) (string, bool) {
	preferences, err := request.negotiator().Charsets(offers...)
	return first(preferences, err, "Accept-Charset", request.Logger)
}

func (request *Request) AcceptsLanguages(offers ...string) (string, bool) {
	preferences, err := request.negotiator().Languages(offers...)
	return first(preferences, err, "Accept-Language", request.Logger)
}

// Range evaluates the Range field against a representation of size bytes. It returns nil and no
// error when the field is absent; unsatisfiable and malformed fields yield errors matching
// ranges.ErrUnsatisfiable and ranges.ErrMalformed.
func (request *Request) Range(size int64, options ...ranges_config.Option) (*motmedelHttpTypes.Ranges, error) {
	rangeValue := request.Headers.Get("Range")
	if rangeValue == "" {
		return nil, nil
	}

	result, err := ranges.Parse(size, rangeValue, options...)
	if err != nil {
		return nil, fmt.Errorf("ranges parse: %w", err)
	}

	return result, nil
}

// Param looks name up in the route parameters, then the body, then the query. The first present,
// non-nil value wins.
func (request *Request) Param(name string, defaultValue ...any) any {
	for _, m := range []map[string]any{request.Params, request.Body, request.Query} {
		if value, ok := m[name]; ok && value != nil {
			return value
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// ParamAs resolves name like Param and asserts the value to T.
func ParamAs[T any](request *Request, name string) (T, error) {
	var zero T

	value := request.Param(name)
	if utils.IsNil(value) {
		return zero, motmedelErrors.NewWithTrace(missing_error.New(name))
	}

	convertedValue, err := utils.Convert[T](value)
	if err != nil {
		return zero, fmt.Errorf("convert: %w", err)
	}

	return convertedValue, nil
}

// Is matches the Content-Type field against types; see type_is.Is.
func (request *Request) Is(types ...string) (string, bool) {
	return type_is.Is(request.Headers.Get("Content-Type"), types...)
}

// Property returns an ad-hoc property supplied at construction or set later.
func (request *Request) Property(name string) (any, bool) {
	value, ok := request.properties[name]
	return value, ok
}

func (request *Request) SetProperty(name string, value any) {
	request.properties[name] = value
}

func setOrDelete[V any](m map[string]V, key string, value []V) map[string]V {
	if len(value) == 0 {
		delete(m, key)
		return m
	}
	if m == nil {
		m = make(map[string]V)
	}
	m[key] = value[0]
	return m
}

func (request *Request) SetParameter(key string, value ...any) {
	request.Params = setOrDelete(request.Params, key, value)
}

func (request *Request) SetSessionVariable(key string, value ...any) {
	request.Session = setOrDelete(request.Session, key, value)
}

func (request *Request) SetCookiesVariable(key string, value ...string) {
	request.Cookies = setOrDelete(request.Cookies, key, value)
}

func (request *Request) SetSignedCookiesVariable(key string, value ...string) {
	request.SignedCookies = setOrDelete(request.SignedCookies, key, value)
}

func (request *Request) SetFilesVariable(key string, value ...any) {
	request.Files = setOrDelete(request.Files, key, value)
}

func (request *Request) SetBodyVariable(key string, value ...any) {
	request.Body = setOrDelete(request.Body, key, value)
}

func (request *Request) SetQueryVariable(key string, value ...any) {
	request.Query = setOrDelete(request.Query, key, value)
}

// SetHeadersVariable replaces the values of a header field, or deletes it when no value is given.
func (request *Request) SetHeadersVariable(name string, values ...string) {
	if len(values) == 0 {
		request.Headers.Delete(name)
		return
	}
	request.Headers.Set(name, values...)
}

func (request *Request) SetBody(body map[string]any) {
	if body == nil {
		body = make(map[string]any)
	}
	request.Body = body
}

func (request *Request) SetMethod(method string) {
	request.Method = method
}

func (request *Request) SetURL(url string) {
	request.URL = url
}

func (request *Request) SetOriginalURL(originalURL string) {
	request.OriginalURL = originalURL
}

func (request *Request) SetBaseURL(baseURL string) {
	request.BaseURL = baseURL
}
