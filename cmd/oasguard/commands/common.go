// Package commands provides CLI command handlers for oasguard.
package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/internal/config"
	"github.com/erraggy/oasguard/internal/pathutil"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrValidationFailed is returned when at least one checked request is invalid.
// main exits with status 1 without printing it.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// commonFlags are shared by every command that reads a document.
type commonFlags struct {
	Config string
	Spec   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.Config, "config", "", "path to an oasguard YAML config file")
	fs.StringVar(&c.Spec, "spec", "", "OpenAPI 2.0 or 3.x document (defaults to the config 'spec' value)")
}

// load reads the configuration and resolves the document path.
func (c *commonFlags) load(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, nil, err
	}
	if c.Spec != "" {
		cfg.Spec = c.Spec
	}
	if cfg.Spec == "" {
		return nil, nil, fmt.Errorf("no OpenAPI document given: use --spec or set 'spec' in the config")
	}
	return cfg, config.SetupLogger(cfg.Log, stderr), nil
}

// openOutput returns w, or a file at path when path is not empty.
// The caller must call the returned close function.
func openOutput(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	cleaned, err := pathutil.ReportFile(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Create(cleaned) //nolint:gosec // path sanitized above
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

func parseFlags(fs *flag.FlagSet, args []string) (help bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
