// Package config loads process configuration for the oasguard CLI and MCP
// server from defaults, an optional YAML file and OASGUARD_* environment
// variables.
package config

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/httpvalidator"
	"github.com/erraggy/oasguard/oaserrors"
)

// EnvPrefix is prepended to every environment override, e.g.
// OASGUARD_VALIDATOR_FRAMEWORK or OASGUARD_LOG_LEVEL.
const EnvPrefix = "OASGUARD"

// Config holds all process configuration.
type Config struct {
	// Spec is the default OpenAPI document path
	Spec      string          `mapstructure:"spec"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Log       LogConfig       `mapstructure:"log"`
	MCP       MCPConfig       `mapstructure:"mcp"`
}

// ValidatorConfig mirrors httpvalidator.Options.
type ValidatorConfig struct {
	Framework      string `mapstructure:"framework"`
	BeautifyErrors bool   `mapstructure:"beautify_errors"`
	FirstError     bool   `mapstructure:"first_error"`
	MaxBodySize    int64  `mapstructure:"max_body_size"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	// Compiled documents are cached per session, keyed by file path and
	// modification time or by a hash of inline content.
	CacheEnabled       bool          `mapstructure:"cache_enabled"`
	CacheMaxSize       int           `mapstructure:"cache_max_size"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	CacheSweepInterval time.Duration `mapstructure:"cache_sweep_interval"`

	// ListLimit is the default page size for list_endpoints; MaxLimit caps it.
	ListLimit int `mapstructure:"list_limit"`
	MaxLimit  int `mapstructure:"max_limit"`

	// MaxInlineSize bounds inline document content in bytes.
	MaxInlineSize int64 `mapstructure:"max_inline_size"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. An empty path means defaults and environment only;
// a non-empty path must name a readable YAML file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("spec", "")
	v.SetDefault("validator.framework", string(adapter.NetHTTP))
	v.SetDefault("validator.beautify_errors", false)
	v.SetDefault("validator.first_error", false)
	v.SetDefault("validator.max_body_size", adapter.DefaultMaxBodySize)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("mcp.cache_enabled", true)
	v.SetDefault("mcp.cache_max_size", 10)
	v.SetDefault("mcp.cache_ttl", "15m")
	v.SetDefault("mcp.cache_sweep_interval", "60s")
	v.SetDefault("mcp.list_limit", 100)
	v.SetDefault("mcp.max_limit", 1000)
	v.SetDefault("mcp.max_inline_size", 10<<20)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			msg := "reading config file"
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				msg = "parsing config file"
			}
			return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: msg, Cause: err}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Message: "decoding configuration", Cause: err}
	}
	if cfg.Validator.MaxBodySize < 0 {
		return nil, &oaserrors.ConfigError{
			Option:  "validator.max_body_size",
			Value:   cfg.Validator.MaxBodySize,
			Message: "cannot be negative",
		}
	}
	if cfg.MCP.ListLimit <= 0 || cfg.MCP.MaxLimit < cfg.MCP.ListLimit {
		return nil, &oaserrors.ConfigError{
			Option:  "mcp.list_limit",
			Value:   cfg.MCP.ListLimit,
			Message: "must be positive and not exceed mcp.max_limit",
		}
	}
	return &cfg, nil
}

// Options converts the validator section into httpvalidator options.
// A zero MaxBodySize keeps the adapter default.
func (c ValidatorConfig) Options() []httpvalidator.Option {
	opts := []httpvalidator.Option{
		httpvalidator.WithFramework(adapter.ParseFramework(c.Framework)),
		httpvalidator.WithBeautifyErrors(c.BeautifyErrors),
		httpvalidator.WithFirstError(c.FirstError),
	}
	if c.MaxBodySize > 0 {
		opts = append(opts, httpvalidator.WithMaxBodySize(c.MaxBodySize))
	}
	return opts
}

// ParseLevel maps a level name to a slog.Level; unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger creates a logger writing to w with the configured level and
// format ("json", otherwise text).
func SetupLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
