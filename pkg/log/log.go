package log

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	motmedelContext "github.com/Motmedel/http_mock_go/pkg/context"
	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	motmedelStrings "github.com/Motmedel/http_mock_go/pkg/strings"
)

type ContextExtractor interface {
	Handle(context.Context, *slog.Record) error
}

type ContextExtractorFunction func(context.Context, *slog.Record) error

func (cef ContextExtractorFunction) Handle(ctx context.Context, record *slog.Record) error {
	return cef(ctx, record)
}

// ContextHandler lets extractors add attributes taken from the context before the record is handled.
type ContextHandler struct {
	slog.Handler
	Extractors []ContextExtractor
}

func (contextHandler *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, extractor := range contextHandler.Extractors {
		if extractor != nil {
			if err := extractor.Handle(ctx, &record); err != nil {
				return fmt.Errorf("extractor handle: %w", err)
			}
		}
	}
	return contextHandler.Handler.Handle(ctx, record)
}

func (contextHandler *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: contextHandler.Handler.WithAttrs(attrs), Extractors: contextHandler.Extractors}
}

func (contextHandler *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: contextHandler.Handler.WithGroup(name), Extractors: contextHandler.Extractors}
}

type ErrorContextExtractor struct {
	SkipCause      bool
	SkipInput      bool
	SkipStackTrace bool
}

func (extractor *ErrorContextExtractor) MakeErrorAttrs(err error) []any {
	if err == nil {
		return nil
	}

	errType := reflect.TypeOf(err).String()

	var attrs []any

	switch err.(type) {
	case *motmedelErrors.Error, *motmedelErrors.ExtendedError:
	default:
		switch errType {
		case "*errors.errorString", "*fmt.wrapError":
		default:
			attrs = append(attrs, slog.String("type", errType))
		}
	}

	if inputError, ok := err.(motmedelErrors.InputErrorI); ok && !extractor.SkipInput {
		if input := inputError.GetInput(); input != nil {
			if textualRepresentation, err := motmedelStrings.MakeTextualRepresentation(input); err == nil {
				attrs = append(
					attrs,
					slog.Group(
						"input",
						slog.String("value", textualRepresentation),
						slog.String("type", reflect.TypeOf(input).String()),
					),
				)
			}
		}
	}

	if !extractor.SkipCause {
		wrappedErrors := motmedelErrors.CollectWrappedErrors(err)
		var lastWrappedErrorAttrs []any

		for i := len(wrappedErrors) - 1; i >= 0; i-- {
			wrappedError := wrappedErrors[i]
			switch reflect.TypeOf(wrappedError).String() {
			case "*errors.joinError", "*fmt.wrapError":
				continue
			}

			wrappedErrorAttrs := extractor.MakeErrorAttrs(wrappedError)
			if lastWrappedErrorAttrs != nil {
				wrappedErrorAttrs = append(wrappedErrorAttrs, slog.Group("cause", lastWrappedErrorAttrs...))
			}
			lastWrappedErrorAttrs = wrappedErrorAttrs
		}

		if lastWrappedErrorAttrs != nil {
			if errType == "*errors.joinError" {
				return lastWrappedErrorAttrs
			}
			attrs = append(attrs, slog.Group("cause", lastWrappedErrorAttrs...))
		}
	}

	if stackTraceError, ok := err.(motmedelErrors.StackTraceErrorI); ok && !extractor.SkipStackTrace {
		if stackTrace := stackTraceError.GetStackTrace(); stackTrace != "" {
			attrs = append(attrs, slog.String("stack_trace", stackTrace))
		}
	}

	if message := err.Error(); message != "" {
		attrs = append(attrs, slog.String("message", message))
	}

	return attrs
}

func (extractor *ErrorContextExtractor) Handle(ctx context.Context, record *slog.Record) error {
	if record == nil {
		return nil
	}

	if logErr, ok := motmedelContext.ErrorFrom(ctx); ok {
		record.Add(slog.Group("error", extractor.MakeErrorAttrs(logErr)...))
	}

	return nil
}

// New returns a logger whose records carry the error stored in the context, if any.
func New(handler slog.Handler, extractors ...ContextExtractor) *slog.Logger {
	if len(extractors) == 0 {
		extractors = []ContextExtractor{&ErrorContextExtractor{}}
	}
	return slog.New(&ContextHandler{Handler: handler, Extractors: extractors})
}

// OrDiscard returns logger, or a logger that drops every record when logger is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
