package httpvalidator

import (
	"sync/atomic"

	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/compiler"
	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/schemaset"
)

// Validator validates requests against a compiled schema set.
// It is safe for concurrent use; Reload swaps the schema set atomically.
//
// Create a Validator from an OpenAPI document:
//
//	v, err := httpvalidator.NewFromFile("openapi.yaml",
//	    httpvalidator.WithFramework(adapter.Chi),
//	    httpvalidator.WithBeautifyErrors(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := v.Validate(r); err != nil {
//	    // *InputValidationError, or a usage / resource-limit error
//	}
type Validator struct {
	cfg   config
	state atomic.Pointer[state]
}

// state is everything a validation reads. It is never modified once stored.
type state struct {
	set     *schemaset.Set
	adapter adapter.Adapter
	opts    Options
	format  ErrorFormatter
	logger  Logger
}

// New creates a Validator for an already compiled schema set.
func New(set *schemaset.Set, opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return newValidator(set, cfg)
}

// NewFromFile compiles the OpenAPI 2.0 or 3.x document at path and creates a
// Validator for it. Only request validators are built.
func NewFromFile(path string, opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := compiler.LoadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := compiler.Compile(doc, compilerOptions(cfg))
	if err != nil {
		return nil, err
	}
	return newValidator(set, cfg)
}

// NewFromData compiles an OpenAPI document held in memory (YAML or JSON)
// and creates a Validator for it.
func NewFromData(data []byte, opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := compiler.LoadData(data)
	if err != nil {
		return nil, err
	}
	set, err := compiler.Compile(doc, compilerOptions(cfg))
	if err != nil {
		return nil, err
	}
	return newValidator(set, cfg)
}

func compilerOptions(cfg *config) compiler.Options {
	return compiler.Options{BuildRequests: true, BuildResponses: false, Logger: cfg.logger}
}

func newValidator(set *schemaset.Set, cfg *config) (*Validator, error) {
	v := &Validator{cfg: *cfg}
	st, err := v.newState(set)
	if err != nil {
		return nil, err
	}
	v.state.Store(st)
	v.cfg.logger.Info("validator initialized",
		"framework", string(st.opts.Framework),
		"templates", set.Len(),
		"endpoints", set.EndpointCount())
	return v, nil
}

func (v *Validator) newState(set *schemaset.Set) (*state, error) {
	if set == nil {
		return nil, &oaserrors.ConfigError{Option: "set", Message: "schema set cannot be nil"}
	}
	a, err := adapter.New(v.cfg.opts.Framework, adapter.Config{
		Templates:   set.Templates(),
		MaxBodySize: v.cfg.opts.MaxBodySize,
	})
	if err != nil {
		return nil, err
	}
	return &state{
		set:     set,
		adapter: a,
		opts:    v.cfg.opts,
		format:  v.cfg.formatter,
		logger:  v.cfg.logger,
	}, nil
}

// Reload replaces the schema set. Validations already running finish against
// the previous set; later ones see the new set. Options are kept.
func (v *Validator) Reload(set *schemaset.Set) error {
	st, err := v.newState(set)
	if err != nil {
		return err
	}
	v.state.Store(st)
	v.cfg.logger.Info("schema set reloaded", "templates", set.Len(), "endpoints", set.EndpointCount())
	return nil
}

// Set returns the schema set currently in use.
func (v *Validator) Set() *schemaset.Set {
	return v.state.Load().set
}

// Options returns the options the Validator was built with.
func (v *Validator) Options() Options {
	return v.state.Load().opts
}

// Validate reads the framework-native request with the configured adapter and
// validates it. See ValidateDescriptor for the result.
func (v *Validator) Validate(native any) error {
	st := v.state.Load()
	d, err := st.adapter.Extract(native)
	if err != nil {
		return err
	}
	return st.validate(d)
}

// ValidateDescriptor validates a normalized request.
//
// It returns nil when the request is valid or when no schema is declared for
// its route template and method. Parameter and body validation both run; their
// records are merged parameters first and passed to the error formatter.
// A nil descriptor or one without a method is a usage error.
func (v *Validator) ValidateDescriptor(d *adapter.Descriptor) error {
	return v.state.Load().validate(d)
}

func (st *state) validate(d *adapter.Descriptor) error {
	if d == nil {
		return &oaserrors.UsageError{Operation: "ValidateDescriptor", Message: "descriptor cannot be nil"}
	}
	method := httputil.NormalizeMethod(d.Method)
	if method == "" {
		return &oaserrors.UsageError{Operation: "ValidateDescriptor", Message: "descriptor has no HTTP method"}
	}

	ep, ok := st.set.Resolve(d.Path, method)
	if !ok {
		st.logger.Debug("no schema for endpoint", "path", d.Path, "method", method)
		return nil
	}

	var paramErrs, bodyErrs []schemaset.Record
	if ep.Parameters != nil {
		paramErrs = ep.Parameters.Validate(d.Parameters())
	}
	if ep.Body != nil {
		bodyErrs = ep.Body.Validate(d.Body)
	}
	if len(paramErrs) == 0 && len(bodyErrs) == 0 {
		return nil
	}

	errs := make([]schemaset.Record, 0, len(paramErrs)+len(bodyErrs))
	errs = append(errs, paramErrs...)
	errs = append(errs, bodyErrs...)
	st.logger.Debug("request failed validation",
		"path", d.Path,
		"method", method,
		"operationId", ep.OperationID,
		"parameterErrors", len(paramErrs),
		"bodyErrors", len(bodyErrs))

	if st.format != nil {
		return st.format(errs, st.opts)
	}
	return NewInputValidationError(errs, FormatOptions{
		Beautify:   st.opts.BeautifyErrors,
		FirstError: st.opts.FirstError,
	})
}
