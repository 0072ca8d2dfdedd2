package httpvalidator

import (
	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/schemaset"
)

// Options is the frozen configuration a Validator was built with.
// It is passed to a custom ErrorFormatter.
type Options struct {
	// Framework selects the adapter that reads native requests
	Framework adapter.Framework
	// BeautifyErrors renders each record as a human-readable message
	BeautifyErrors bool
	// FirstError keeps only the first record of a failed validation
	FirstError bool
	// MaxBodySize limits how much of a request body is read (0 = 10 MiB)
	MaxBodySize int64
}

// ErrorFormatter turns the merged validation records into the error returned
// to the caller. When set, it replaces the default formatting entirely and its
// result is returned verbatim; returning nil lets the request through.
type ErrorFormatter func(errs []schemaset.Record, opts Options) error

// Option is a functional option for configuring a Validator.
type Option func(*config) error

// config holds the configuration for a Validator.
type config struct {
	opts      Options
	formatter ErrorFormatter
	logger    Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		opts:   Options{Framework: adapter.NetHTTP},
		logger: NopLogger{},
	}
}

func applyOptions(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithFramework selects the adapter used by Validate.
// Unknown or empty names select adapter.NetHTTP.
func WithFramework(f adapter.Framework) Option {
	return func(c *config) error {
		c.opts.Framework = adapter.ParseFramework(string(f))
		return nil
	}
}

// WithErrorFormatter installs a custom formatter. BeautifyErrors and
// FirstError are ignored when a formatter is set.
func WithErrorFormatter(f ErrorFormatter) Option {
	return func(c *config) error {
		c.formatter = f
		return nil
	}
}

// WithBeautifyErrors sets whether records are rendered as messages.
// Default is false.
func WithBeautifyErrors(beautify bool) Option {
	return func(c *config) error {
		c.opts.BeautifyErrors = beautify
		return nil
	}
}

// WithFirstError sets whether only the first record is reported.
// Default is false.
func WithFirstError(first bool) Option {
	return func(c *config) error {
		c.opts.FirstError = first
		return nil
	}
}

// WithLogger sets the logger for initialization and per-request diagnostics.
// Default is NopLogger.
func WithLogger(l Logger) Option {
	return func(c *config) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "logger", Message: "logger cannot be nil"}
		}
		c.logger = l
		return nil
	}
}

// WithMaxBodySize sets the maximum request body size in bytes.
// Bodies exceeding this limit fail with *oaserrors.ResourceLimitError.
// Default: 10 MiB.
func WithMaxBodySize(n int64) Option {
	return func(c *config) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "maxBodySize", Value: n, Message: "cannot be negative"}
		}
		c.opts.MaxBodySize = n
		return nil
	}
}
