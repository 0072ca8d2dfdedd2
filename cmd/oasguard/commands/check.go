package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/httpvalidator"
	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/internal/issues"
	"github.com/erraggy/oasguard/schemaset"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	commonFlags
	Format     string
	Output     string
	Beautify   bool
	FirstError bool
	Quiet      bool
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "o", "", "write the report to a file instead of stdout")
	fs.BoolVar(&flags.Beautify, "beautify", false, "report human-readable messages instead of raw records")
	fs.BoolVar(&flags.FirstError, "first-error", false, "report only the first failure per request")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit code")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard check [flags] <request-file>...\n\n")
		Writef(fs.Output(), "Validate recorded HTTP requests against an OpenAPI document.\n\n")
		Writef(fs.Output(), "Each request file (YAML or JSON) holds one request or a list of them:\n\n")
		Writef(fs.Output(), "  method: POST\n")
		Writef(fs.Output(), "  path: /pets            # route template or concrete path\n")
		Writef(fs.Output(), "  headers: {X-Key: abc}\n")
		Writef(fs.Output(), "  query: {limit: \"10\"}\n")
		Writef(fs.Output(), "  body: {name: rex}\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard check --spec openapi.yaml requests/*.yaml\n")
		Writef(fs.Output(), "  oasguard check --spec openapi.yaml --format json req.json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    All requests are valid\n")
		Writef(fs.Output(), "  1    At least one request failed validation, or an error occurred\n")
	}

	return fs, flags
}

// CheckResult is the outcome for one request.
type CheckResult struct {
	File     string             `json:"file" yaml:"file"`
	Index    int                `json:"index" yaml:"index"`
	Method   string             `json:"method" yaml:"method"`
	Template string             `json:"template" yaml:"template"`
	Matched  bool               `json:"matched" yaml:"matched"`
	Valid    bool               `json:"valid" yaml:"valid"`
	Errors   []schemaset.Record `json:"errors,omitempty" yaml:"errors,omitempty"`
	Messages []string           `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// CheckReport is the outcome for every checked request.
type CheckReport struct {
	Spec    string        `json:"spec" yaml:"spec"`
	Valid   bool          `json:"valid" yaml:"valid"`
	Results []CheckResult `json:"results" yaml:"results"`
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	return runCheck(args, os.Stdout, os.Stderr)
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupCheckFlags()
	fs.SetOutput(stderr)
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("check command requires at least one request file")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	cfg, logger, err := flags.load(stderr)
	if err != nil {
		return err
	}
	opts := append(cfg.Validator.Options(),
		httpvalidator.WithLogger(httpvalidator.NewSlogAdapter(logger)),
		httpvalidator.WithFirstError(flags.FirstError || cfg.Validator.FirstError),
	)
	v, err := httpvalidator.NewFromFile(cfg.Spec, opts...)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Spec, err)
	}
	router, err := adapter.NewRouter(v.Set().Templates())
	if err != nil {
		return err
	}

	report := CheckReport{Spec: cfg.Spec, Valid: true}
	beautify := flags.Beautify || cfg.Validator.BeautifyErrors
	for _, file := range fs.Args() {
		requests, err := LoadRequests(file)
		if err != nil {
			return err
		}
		for n, req := range requests {
			result, err := checkOne(v, router, req, beautify)
			if err != nil {
				return fmt.Errorf("%s[%d]: %w", file, n, err)
			}
			result.File = file
			result.Index = n
			report.Valid = report.Valid && result.Valid
			report.Results = append(report.Results, result)
		}
	}

	if !flags.Quiet {
		w, closeOutput, err := openOutput(flags.Output, stdout)
		if err != nil {
			return err
		}
		if flags.Format == FormatText {
			writeCheckText(w, report)
		} else if err := OutputStructured(w, report, flags.Format); err != nil {
			_ = closeOutput()
			return err
		}
		if err := closeOutput(); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if !report.Valid {
		return ErrValidationFailed
	}
	return nil
}

func checkOne(v *httpvalidator.Validator, router *adapter.Router, req *adapter.Descriptor, beautify bool) (CheckResult, error) {
	d := router.Normalize(req)
	method := httputil.NormalizeMethod(d.Method)
	_, matched := v.Set().Resolve(d.Path, method)
	result := CheckResult{Method: method, Template: d.Path, Matched: matched, Valid: true}

	err := v.ValidateDescriptor(d)
	if err == nil {
		return result, nil
	}
	var inputErr *httpvalidator.InputValidationError
	if !errors.As(err, &inputErr) {
		return result, err
	}
	result.Valid = false
	result.Errors = inputErr.Errors
	if beautify {
		result.Messages = issues.Messages(inputErr.Errors)
		result.Errors = nil
	}
	return result, nil
}

// LoadRequests reads one request descriptor, or a list of them, from a YAML
// or JSON file. Values are normalized to their JSON forms so numbers decode
// as float64, the way a JSON request body would.
func LoadRequests(path string) ([]*adapter.Descriptor, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied CLI argument
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding request file %s: %w", path, err)
	}
	if _, ok := raw.([]any); !ok {
		raw = []any{raw}
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding request file %s: %w", path, err)
	}

	var requests []*adapter.Descriptor
	if err := json.Unmarshal(normalized, &requests); err != nil {
		return nil, fmt.Errorf("decoding request file %s: %w", path, err)
	}
	for n, req := range requests {
		if req == nil || req.Method == "" || req.Path == "" {
			return nil, fmt.Errorf("request file %s[%d]: method and path are required", path, n)
		}
		if !httputil.IsSupportedMethod(httputil.NormalizeMethod(req.Method)) {
			return nil, fmt.Errorf("request file %s[%d]: unsupported method %q", path, n, req.Method)
		}
	}
	return requests, nil
}

func writeCheckText(w io.Writer, report CheckReport) {
	failed := 0
	for _, r := range report.Results {
		mark := "✓"
		if !r.Valid {
			mark = "✗"
			failed++
		}
		note := ""
		if !r.Matched {
			note = " (no schema)"
		}
		Writef(w, "%s %s %s%s  [%s#%d]\n", mark, r.Method, r.Template, note, r.File, r.Index)
		for _, e := range r.Errors {
			Writef(w, "    %s\n", e.String())
		}
		for _, m := range r.Messages {
			Writef(w, "    %s\n", m)
		}
	}
	Writef(w, "\n%d request(s) checked, %d failed\n", len(report.Results), failed)
}
