// Package mock creates linked mock request and response pairs.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/errors/types/nil_error"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_request"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_request/mock_request_config"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_response"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_response/mock_response_config"
	"github.com/Motmedel/http_mock_go/pkg/http/types/http_context_extractor"
	motmedelLog "github.com/Motmedel/http_mock_go/pkg/log"
)

// NewLogger returns a logger for handlers run by Serve. Records logged with the handler's request
// context carry the mock request ID, and records logged with an error in their context carry the
// error.
func NewLogger(handler slog.Handler) *slog.Logger {
	return motmedelLog.New(handler, &motmedelLog.ErrorContextExtractor{}, http_context_extractor.New())
}

type Pair struct {
	Request  *mock_request.Request
	Response *mock_response.Response
}

// New creates a request from requestOptions and a response linked to it. The response formats
// against the request, and the request evaluates freshness against the response.
func New(requestOptions []mock_request_config.Option, responseOptions ...mock_response_config.Option) *Pair {
	request := mock_request.New(requestOptions...)

	options := append([]mock_response_config.Option{mock_response_config.WithRequest(request)}, responseOptions...)
	response := mock_response.New(options...)

	return &Pair{Request: request, Response: response}
}

// Serve runs a net/http handler against the pair. The handler's request body streams from the mock
// request, and what it writes is recorded on the mock response, which ends when the handler returns.
func (pair *Pair) Serve(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		return motmedelErrors.NewWithTrace(nil_error.New("handler"))
	}

	httpRequest, err := pair.Request.HTTPRequest(ctx)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer httpRequest.Body.Close()

	responseWriter := pair.Response.ResponseWriter()
	handler.ServeHTTP(responseWriter, httpRequest)
	if !responseWriter.WriteHeaderCalled {
		responseWriter.WriteHeader(http.StatusOK)
	}

	if err := pair.Response.End(); err != nil {
		return fmt.Errorf("mock response end: %w", err)
	}

	return nil
}
