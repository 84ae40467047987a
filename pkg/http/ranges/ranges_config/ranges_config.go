package ranges_config

type Config struct {
	Combine bool
}

type Option func(*Config)

func New(options ...Option) *Config {
	config := &Config{}
	for _, option := range options {
		option(config)
	}
	return config
}

// WithCombine merges overlapping and adjacent ranges.
func WithCombine(combine bool) Option {
	return func(config *Config) {
		config.Combine = combine
	}
}
