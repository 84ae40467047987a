package mock_request_config

import (
	"log/slog"
	"maps"
	"net/http"
)

const (
	DefaultMethod = http.MethodGet
	DefaultIP     = "127.0.0.1"
)

// Config holds the construction options of a mock request. Nil maps mean "not supplied".
type Config struct {
	Method        string
	URL           string
	OriginalURL   string
	BaseURL       string
	Path          string
	Protocol      string
	Params        map[string]any
	Session       map[string]any
	Cookies       map[string]string
	SignedCookies map[string]string
	Headers       http.Header
	Body          map[string]any
	Query         map[string]any
	Files         map[string]any
	IP            string
	Extra         map[string]any
	Logger        *slog.Logger
}

type Option func(*Config)

func New(options ...Option) *Config {
	config := &Config{
		Method: DefaultMethod,
		IP:     DefaultIP,
	}
	for _, option := range options {
		if option != nil {
			option(config)
		}
	}
	return config
}

func WithMethod(method string) Option {
	return func(config *Config) {
		config.Method = method
	}
}

func WithURL(url string) Option {
	return func(config *Config) {
		config.URL = url
	}
}

func WithOriginalURL(originalURL string) Option {
	return func(config *Config) {
		config.OriginalURL = originalURL
	}
}

func WithBaseURL(baseURL string) Option {
	return func(config *Config) {
		config.BaseURL = baseURL
	}
}

func WithPath(path string) Option {
	return func(config *Config) {
		config.Path = path
	}
}

func WithProtocol(protocol string) Option {
	return func(config *Config) {
		config.Protocol = protocol
	}
}

func WithParams(params map[string]any) Option {
	return func(config *Config) {
		config.Params = maps.Clone(params)
	}
}

func WithSession(session map[string]any) Option {
	return func(config *Config) {
		config.Session = maps.Clone(session)
	}
}

func WithCookies(cookies map[string]string) Option {
	return func(config *Config) {
		config.Cookies = maps.Clone(cookies)
	}
}

func WithSignedCookies(signedCookies map[string]string) Option {
	return func(config *Config) {
		config.SignedCookies = maps.Clone(signedCookies)
	}
}

// WithHeaders merges headers into the configured ones.
func WithHeaders(headers map[string]string) Option {
	return func(config *Config) {
		if config.Headers == nil {
			config.Headers = make(http.Header)
		}
		for name, value := range headers {
			config.Headers[name] = []string{value}
		}
	}
}

func WithHeader(name string, values ...string) Option {
	return func(config *Config) {
		if config.Headers == nil {
			config.Headers = make(http.Header)
		}
		config.Headers[name] = append(config.Headers[name], values...)
	}
}

func WithBody(body map[string]any) Option {
	return func(config *Config) {
		config.Body = maps.Clone(body)
	}
}

func WithQuery(query map[string]any) Option {
	return func(config *Config) {
		config.Query = maps.Clone(query)
	}
}

func WithFiles(files map[string]any) Option {
	return func(config *Config) {
		config.Files = maps.Clone(files)
	}
}

func WithIP(ip string) Option {
	return func(config *Config) {
		config.IP = ip
	}
}

// WithExtra sets ad-hoc properties that are copied onto the request.
func WithExtra(extra map[string]any) Option {
	return func(config *Config) {
		if config.Extra == nil {
			config.Extra = make(map[string]any)
		}
		maps.Copy(config.Extra, extra)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(config *Config) {
		config.Logger = logger
	}
}
