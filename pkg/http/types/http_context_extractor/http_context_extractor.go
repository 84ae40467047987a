package http_context_extractor

import (
	"context"
	"log/slog"

	motmedelHttpContext "github.com/Motmedel/http_mock_go/pkg/http/context"
)

// Extractor adds the request identifier found in the context to log records as http.request.id.
type Extractor struct{}

func (e *Extractor) Handle(ctx context.Context, record *slog.Record) error {
	if record == nil {
		return nil
	}

	if requestId, ok := motmedelHttpContext.RequestIdFrom(ctx); ok {
		record.Add(slog.Group("http", slog.Group("request", slog.String("id", requestId))))
	}

	return nil
}

func New() *Extractor {
	return &Extractor{}
}
