package matmul

import (
	"log/slog"

	"github.com/cwbudde/algo-wavelet/dsp/wavelet/boundary"
)

// Config holds the settings shared by all matrix transforms.
type Config struct {
	// Level is the number of decomposition levels. 0 selects the deepest
	// level the signal supports.
	Level int

	// Boundary selects how filter rows at the signal edges are handled.
	Boundary boundary.Mode

	// Logger receives matrix construction and level-planning events.
	Logger *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the maximum level, Gram-Schmidt boundary handling
// and a logger that discards everything.
func DefaultConfig() Config {
	return Config{
		Level:    0,
		Boundary: boundary.GramSchmidt,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// WithLevel sets the decomposition level. Negative values are ignored.
func WithLevel(level int) Option {
	return func(cfg *Config) {
		if level >= 0 {
			cfg.Level = level
		}
	}
}

// WithBoundary sets the boundary mode. Unknown modes are ignored.
func WithBoundary(mode boundary.Mode) Option {
	return func(cfg *Config) {
		if mode == boundary.GramSchmidt || mode == boundary.Circular {
			cfg.Boundary = mode
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
