// Package mock_response provides an in-memory stand-in for an outgoing framework response.
package mock_response

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"reflect"
	"strings"
	"time"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/errors/types/missing_error"
	"github.com/Motmedel/http_mock_go/pkg/event"
	"github.com/Motmedel/http_mock_go/pkg/http/caching"
	"github.com/Motmedel/http_mock_go/pkg/http/mime"
	mockErrors "github.com/Motmedel/http_mock_go/pkg/http/mock/errors"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/headers"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_request"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_response/mock_response_config"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
	motmedelJson "github.com/Motmedel/http_mock_go/pkg/json"
	motmedelLog "github.com/Motmedel/http_mock_go/pkg/log"
	motmedelMaps "github.com/Motmedel/http_mock_go/pkg/maps"
	motmedelStrings "github.com/Motmedel/http_mock_go/pkg/strings"
	"golang.org/x/net/http/httpguts"
)

const (
	EventSend   = "send"
	EventEnd    = "end"
	EventFinish = "finish"
	EventRender = "render"
)

const (
	DefaultStatusCode    = http.StatusOK
	DefaultStatusMessage = "OK"
	// StatusUnset is the status code after Status is called without a code.
	StatusUnset = 0
)

const (
	defaultRedirectStatusCode = http.StatusFound
	notAcceptableBody         = "Not Acceptable"
)

var clearedCookieExpires = time.Unix(0, 0).UTC()

type Response struct {
	*event.Emitter

	StatusCode    int
	StatusMessage string
	Locals        map[string]any

	Logger *slog.Logger

	headers        *headers.Headers
	data           strings.Builder
	chunks         [][]byte
	encoding       string
	cookies        map[string]*motmedelHttpTypes.Cookie
	redirectURL    string
	renderView     string
	renderData     map[string]any
	ended          bool
	finished       bool
	headersSent    bool
	writableStream io.Writer
	request        *mock_request.Request
}

func New(options ...mock_response_config.Option) *Response {
	config := mock_response_config.New(options...)

	emitter := config.EventEmitter
	if emitter == nil {
		emitter = event.New()
	}

	locals := config.Locals
	if locals == nil {
		locals = make(map[string]any)
	}

	logger := motmedelLog.OrDiscard(config.Logger)
	if config.Request != nil {
		logger = logger.With(
			slog.Group("http", slog.Group("request", slog.String("id", config.Request.ID.String()))),
		)
	}

	response := &Response{
		Emitter:        emitter,
		StatusCode:     DefaultStatusCode,
		StatusMessage:  DefaultStatusMessage,
		Locals:         locals,
		Logger:         logger,
		headers:        headers.New(),
		cookies:        make(map[string]*motmedelHttpTypes.Cookie),
		writableStream: config.WritableStream,
		request:        config.Request,
	}

	if config.Request != nil {
		config.Request.SetResponse(response)
	}

	return response
}

func missing(field string) error {
	return motmedelErrors.NewWithTrace(missing_error.New(field))
}

func statusCodeFromAny(value any) (int, bool) {
	switch typedValue := value.(type) {
	case int:
		return typedValue, true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return int(reflect.ValueOf(typedValue).Convert(reflect.TypeOf(0)).Int()), true
	}
	return 0, false
}

func fieldValues(value any) []string {
	switch typedValue := value.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{typedValue}
	case []string:
		return typedValue
	case []any:
		values := make([]string, 0, len(typedValue))
		for _, element := range typedValue {
			values = append(values, fieldValues(element)...)
		}
		return values
	}

	text, err := motmedelStrings.MakeTextualRepresentation(value)
	if err != nil {
		return []string{fmt.Sprint(value)}
	}
	return []string{text}
}

// headerFields reads a header mapping passed to WriteHead or Send.
func headerFields(value any) (map[string][]string, bool) {
	switch typedValue := value.(type) {
	case http.Header:
		return typedValue, true
	case map[string][]string:
		return typedValue, true
	case map[string]string:
		fields := make(map[string][]string, len(typedValue))
		for name, fieldValue := range typedValue {
			fields[name] = []string{fieldValue}
		}
		return fields, true
	case map[string]any:
		fields := make(map[string][]string, len(typedValue))
		for name, fieldValue := range typedValue {
			fields[name] = fieldValues(fieldValue)
		}
		return fields, true
	}
	return nil, false
}

func (response *Response) mergeHeaders(fields map[string][]string) {
	for name, values := range fields {
		response.headers.Set(name, values...)
	}
}

// SetHeader replaces the values of a header field.
func (response *Response) SetHeader(name string, values ...string) error {
	if name == "" {
		return missing("name")
	}
	response.headers.Set(name, values...)
	return nil
}

// GetHeader returns the value of a header field, multiple values joined by ", ".
func (response *Response) GetHeader(name string) (string, error) {
	if name == "" {
		return "", missing("name")
	}
	return response.headers.Get(name), nil
}

func (response *Response) RemoveHeader(name string) error {
	if name == "" {
		return missing("name")
	}
	response.headers.Delete(name)
	return nil
}

func (response *Response) HasHeader(name string) bool {
	return response.headers.Has(name)
}

func (response *Response) GetHeaderNames() []string {
	var names []string
	for name := range response.headers.Keys() {
		names = append(names, name)
	}
	return names
}

// GetHeaders returns a shallow copy of the header fields keyed by lower-cased name.
func (response *Response) GetHeaders() map[string][]string {
	return response.headers.Map()
}

func (response *Response) Get(name string) (string, error) {
	if name == "" {
		return "", missing("name")
	}
	return response.headers.Get(name), nil
}

// Set stores value under name. Strings and string slices are stored as is, other values in their
// textual form.
func (response *Response) Set(name string, value any) error {
	return response.SetHeader(name, fieldValues(value)...)
}

func (response *Response) Header(name string, value any) error {
	return response.Set(name, value)
}

func (response *Response) SetFields(fields map[string]any) error {
	for name, value := range fields {
		if err := response.Set(name, value); err != nil {
			return fmt.Errorf("set: %w", err)
		}
	}
	return nil
}

// Append adds values to a header field, creating it when absent.
func (response *Response) Append(name string, values ...string) error {
	return response.SetHeader(name, append(response.headers.GetAll(name), values...)...)
}

func (response *Response) HeadersSent() bool {
	return response.headersSent
}

func (response *Response) SetEncoding(encoding string) {
	response.encoding = encoding
}

func (response *Response) GetEncoding() string {
	return response.encoding
}

func (response *Response) forward(data []byte) error {
	if response.writableStream == nil || len(data) == 0 {
		return nil
	}
	if _, err := response.writableStream.Write(data); err != nil {
		return motmedelErrors.New(fmt.Errorf("writable stream write: %w", err))
	}
	return nil
}

// Write appends data to the binary accumulator.
func (response *Response) Write(data []byte) (int, error) {
	response.chunks = append(response.chunks, bytes.Clone(data))
	response.headersSent = true

	if err := response.forward(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// WriteString appends s to the text accumulator.
func (response *Response) WriteString(s string) (int, error) {
	response.data.WriteString(s)
	response.headersSent = true

	if err := response.forward([]byte(s)); err != nil {
		return 0, err
	}
	return len(s), nil
}

// write routes data to the accumulator matching its type. Values that are neither text nor bytes
// are written as JSON.
func (response *Response) write(data any, encoding string) error {
	if encoding != "" {
		response.encoding = encoding
	}

	switch typedData := data.(type) {
	case nil:
		return nil
	case []byte:
		_, err := response.Write(typedData)
		return err
	case string:
		_, err := response.WriteString(typedData)
		return err
	}

	if byteData, ok := motmedelStrings.ByteSliceFromAny(data); ok {
		_, err := response.Write(byteData)
		return err
	}

	text, err := motmedelJson.Stringify(data)
	if err != nil {
		return fmt.Errorf("json stringify: %w", err)
	}
	_, err = response.WriteString(text)
	return err
}

// End performs a final write of the first non-callback argument, with a following string taken as
// its encoding, and marks the response as ended. "end" and "finish" are emitted on the first call
// only. Every func() argument is invoked on every call.
func (response *Response) End(args ...any) error {
	var callbacks []func()
	var values []any
	for _, arg := range args {
		if callback, ok := arg.(func()); ok {
			callbacks = append(callbacks, callback)
			continue
		}
		values = append(values, arg)
	}

	defer func() {
		for _, callback := range callbacks {
			callback()
		}
	}()

	if response.ended {
		response.Logger.Debug("End was called on a response that has already ended.")
		return nil
	}

	var data any
	var encoding string
	if len(values) > 0 {
		data = values[0]
	}
	if len(values) > 1 {
		encoding, _ = values[1].(string)
	}

	if err := response.write(data, encoding); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	response.ended = true
	response.headersSent = true
	response.Emit(EventEnd)
	response.finished = true
	response.Emit(EventFinish)

	if closer, ok := response.writableStream.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return motmedelErrors.New(fmt.Errorf("writable stream close: %w", err))
		}
	}

	return nil
}

// WriteHead sets the status code. A single extra argument is a status message or a header mapping;
// two are a status message and a header mapping. Headers are merged into the existing ones.
func (response *Response) WriteHead(statusCode int, args ...any) error {
	if response.ended {
		return motmedelErrors.NewWithTrace(mockErrors.ErrEndAlreadyCalled, statusCode)
	}

	response.StatusCode = statusCode

	switch len(args) {
	case 0:
	case 1:
		if message, ok := args[0].(string); ok {
			response.StatusMessage = message
		} else if fields, ok := headerFields(args[0]); ok {
			response.mergeHeaders(fields)
		}
	default:
		if message, ok := args[0].(string); ok {
			response.StatusMessage = message
		}
		if fields, ok := headerFields(args[1]); ok {
			response.mergeHeaders(fields)
		}
	}

	return nil
}

// Status sets the status code, or unsets it when no code is given.
func (response *Response) Status(statusCode ...int) *Response {
	if len(statusCode) == 0 {
		response.StatusCode = StatusUnset
		return response
	}
	response.StatusCode = statusCode[0]
	return response
}

// Send writes a body and ends the response. A numeric argument, first or second, is taken as the
// status code; a sole numeric argument only sets the status. Otherwise a second argument is the
// encoding, and a third form (body, headers, status) is accepted.
func (response *Response) Send(args ...any) error {
	var err error

	switch len(args) {
	case 0:
	case 1:
		if statusCode, ok := statusCodeFromAny(args[0]); ok {
			response.StatusCode = statusCode
		} else {
			err = response.write(args[0], "")
		}
	case 2:
		if statusCode, ok := statusCodeFromAny(args[0]); ok {
			err = response.write(args[1], "")
			response.StatusCode = statusCode
		} else if statusCode, ok := statusCodeFromAny(args[1]); ok {
			err = response.write(args[0], "")
			response.StatusCode = statusCode
		} else {
			encoding, _ := args[1].(string)
			err = response.write(args[0], encoding)
		}
	default:
		err = response.write(args[0], "")
		if fields, ok := headerFields(args[1]); ok {
			response.mergeHeaders(fields)
		}
		if statusCode, ok := statusCodeFromAny(args[2]); ok {
			response.StatusCode = statusCode
		}
	}
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	response.headersSent = true
	response.Emit(EventSend)

	return response.End()
}

// SendStatus sets the status code and sends its reason phrase as plain text.
func (response *Response) SendStatus(statusCode int) error {
	response.StatusCode = statusCode
	response.headers.Set("Content-Type", "text/plain")

	text := http.StatusText(statusCode)
	if text == "" {
		text = fmt.Sprint(statusCode)
	}

	return response.Send(text)
}

// ContentType sets Content-Type from a media type, an extension or a file name.
func (response *Response) ContentType(token string) error {
	if token == "" {
		return missing("type")
	}
	response.headers.Set("Content-Type", mime.ContentType(token))
	return nil
}

func (response *Response) Type(token string) error {
	return response.ContentType(token)
}

// Vary adds fields to the Vary header. Fields already present, compared case-insensitively, are
// skipped; "*" replaces the whole value.
func (response *Response) Vary(fields ...string) *Response {
	existing := response.headers.GetAll("Vary")
	if httpguts.HeaderValuesContainsToken(existing, "*") {
		return response
	}

	var current []string
	for _, value := range existing {
		for token := range strings.SplitSeq(value, ",") {
			if token = strings.TrimSpace(token); token != "" {
				current = append(current, token)
			}
		}
	}

	for _, field := range fields {
		for token := range strings.SplitSeq(field, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if token == "*" {
				response.headers.Set("Vary", "*")
				return response
			}
			if httpguts.HeaderValuesContainsToken(current, token) {
				continue
			}
			current = append(current, token)
		}
	}

	if len(current) > 0 {
		response.headers.Set("Vary", strings.Join(current, ", "))
	}

	return response
}

// Location sets the Location header to url as given.
func (response *Response) Location(url string) *Response {
	response.headers.Set("Location", url)
	return response
}

// Redirect records a redirect to url and ends the response. The status code defaults to 302 and
// may be given before or after the url.
func (response *Response) Redirect(args ...any) error {
	statusCode := defaultRedirectStatusCode
	var url string

	for _, arg := range args {
		if code, ok := statusCodeFromAny(arg); ok {
			statusCode = code
			continue
		}
		if text, ok := arg.(string); ok {
			url = text
		}
	}

	response.StatusCode = statusCode
	response.redirectURL = url
	response.headers.Set("Location", url)

	return response.End()
}

// Render records view and its data. With a func(error, string) callback the callback receives
// (nil, "") and nothing is emitted; otherwise "render" is emitted and the response ends.
func (response *Response) Render(view string, args ...any) error {
	response.renderView = view
	response.renderData = make(map[string]any)

	var callback func(error, string)
	for _, arg := range args {
		switch typedArg := arg.(type) {
		case nil:
		case func(error, string):
			callback = typedArg
		case map[string]any:
			response.renderData = maps.Clone(typedArg)
		default:
			data, err := motmedelJson.ObjectToMap(typedArg)
			if err != nil {
				return fmt.Errorf("object to map: %w", err)
			}
			response.renderData = data
		}
	}

	if callback != nil {
		callback(nil, "")
		return nil
	}

	response.Emit(EventRender)
	return response.End()
}

// JSON writes data as JSON text with Content-Type application/json and ends the response. A
// numeric argument before or after the data is the status code; a sole argument is always data.
func (response *Response) JSON(args ...any) error {
	response.headers.Set("Content-Type", "application/json")

	var data any
	hasData := true

	switch len(args) {
	case 0:
		hasData = false
	case 1:
		data = args[0]
	default:
		if statusCode, ok := statusCodeFromAny(args[0]); ok {
			response.StatusCode = statusCode
			data = args[1]
		} else if statusCode, ok := statusCodeFromAny(args[1]); ok {
			response.StatusCode = statusCode
			data = args[0]
		} else {
			data = args[0]
		}
	}

	if hasData {
		text, err := motmedelJson.Stringify(data)
		if err != nil {
			return fmt.Errorf("json stringify: %w", err)
		}
		if err := response.write(text, "utf8"); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	response.Emit(EventSend)
	return response.End()
}

// JSONP is JSON; no callback padding is applied.
func (response *Response) JSONP(args ...any) error {
	return response.JSON(args...)
}

// FormatHandler handles one media type or extension in Format. The type "default" handles requests
// that accept none of the others.
type FormatHandler struct {
	Type   string
	Handle func()
}

// Format invokes the handler whose type best matches the request's Accept field. Without a match or
// default handler the status becomes 406 with the body "Not Acceptable".
func (response *Response) Format(handlers []*FormatHandler) error {
	if response.request == nil {
		return motmedelErrors.NewWithTrace(mockErrors.ErrRequestUnavailable)
	}

	var offers []string
	var defaultHandler *FormatHandler
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if handler.Type == "default" {
			defaultHandler = handler
			continue
		}
		offers = append(offers, handler.Type)
	}

	if len(offers) > 0 {
		if offer, ok := response.request.Accepts(offers...); ok {
			for _, handler := range handlers {
				if handler != nil && handler.Type == offer {
					if handler.Handle != nil {
						handler.Handle()
					}
					return nil
				}
			}
		}
	}

	if defaultHandler != nil {
		if defaultHandler.Handle != nil {
			defaultHandler.Handle()
		}
		return nil
	}

	response.StatusCode = http.StatusNotAcceptable
	if _, err := response.WriteString(notAcceptableBody); err != nil {
		return fmt.Errorf("write string: %w", err)
	}

	return nil
}

// Attachment sets Content-Disposition to attachment, with the file name when one is given.
func (response *Response) Attachment(filename ...string) *Response {
	if len(filename) == 0 || filename[0] == "" {
		response.headers.Set("Content-Disposition", "attachment")
		return response
	}

	response.headers.Set("Content-Disposition", `attachment; filename="`+filename[0]+`"`)
	return response
}

func (response *Response) appendSetCookie(name string, cookie *motmedelHttpTypes.Cookie) {
	if text := cookie.HttpCookie(name).String(); text != "" {
		response.headers.Append("Set-Cookie", text)
	}
}

// Cookie records a cookie and appends its Set-Cookie field.
func (response *Response) Cookie(name string, value string, options *motmedelHttpTypes.CookieOptions) *Response {
	cookie := &motmedelHttpTypes.Cookie{Value: value, Options: options.Clone()}
	response.cookies[name] = cookie
	response.appendSetCookie(name, cookie)
	return response
}

// ClearCookie replaces a cookie with an empty, expired one whose path is "/". The options recorded
// for the cookie are kept, with the non-zero fields of options laid over them.
func (response *Response) ClearCookie(name string, options *motmedelHttpTypes.CookieOptions) *Response {
	var recordedOptions *motmedelHttpTypes.CookieOptions
	if existing, ok := response.cookies[name]; ok {
		recordedOptions = existing.Options
	}
	clearedOptions := recordedOptions.Merge(options)

	expires := clearedCookieExpires
	clearedOptions.Expires = &expires
	clearedOptions.Path = "/"

	cookie := &motmedelHttpTypes.Cookie{Options: clearedOptions}
	response.cookies[name] = cookie
	response.appendSetCookie(name, cookie)
	return response
}

// FreshnessValidators returns the status code and the validators a request's freshness is evaluated
// against.
func (response *Response) FreshnessValidators() (int, *caching.Validators) {
	return response.StatusCode, &caching.Validators{
		ETag:         response.headers.Get("ETag"),
		LastModified: response.headers.Get("Last-Modified"),
	}
}

// LocalAs returns the local variable key asserted to T.
func LocalAs[T any](response *Response, key string) (T, error) {
	value, err := motmedelMaps.GetConvert[T](response.Locals, key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("map get convert: %w", err)
	}
	return value, nil
}

func (response *Response) Request() *mock_request.Request {
	return response.request
}
