package mock_response_config

import (
	"io"
	"log/slog"
	"maps"

	"github.com/Motmedel/http_mock_go/pkg/event"
	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/mock_request"
)

// Config holds the construction options of a mock response.
type Config struct {
	EventEmitter   *event.Emitter
	WritableStream io.Writer
	Request        *mock_request.Request
	Locals         map[string]any
	Logger         *slog.Logger
}

type Option func(*Config)

func New(options ...Option) *Config {
	config := &Config{}
	for _, option := range options {
		if option != nil {
			option(config)
		}
	}
	return config
}

// WithEventEmitter makes the response emit its lifecycle events on emitter instead of its own.
func WithEventEmitter(emitter *event.Emitter) Option {
	return func(config *Config) {
		config.EventEmitter = emitter
	}
}

// WithWritableStream forwards every body write to writer.
func WithWritableStream(writer io.Writer) Option {
	return func(config *Config) {
		config.WritableStream = writer
	}
}

func WithRequest(request *mock_request.Request) Option {
	return func(config *Config) {
		config.Request = request
	}
}

func WithLocals(locals map[string]any) Option {
	return func(config *Config) {
		config.Locals = maps.Clone(locals)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(config *Config) {
		config.Logger = logger
	}
}
