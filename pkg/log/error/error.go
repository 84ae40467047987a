package error

import (
	"context"
	"log/slog"

	motmedelContext "github.com/Motmedel/http_mock_go/pkg/context"
)

func LogDebug(message string, err error, logger *slog.Logger, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(motmedelContext.WithError(context.Background(), err), message, args...)
}
