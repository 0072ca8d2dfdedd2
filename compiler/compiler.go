package compiler

import (
	"context"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/internal/pathutil"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/schemaset"
)

// Logger receives compilation diagnostics. httpvalidator.Logger satisfies it.
type Logger interface {
	Debug(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Options controls what Compile builds.
type Options struct {
	// BuildRequests must be true; request validators are the only thing compiled.
	BuildRequests bool
	// BuildResponses must be false; response validation is not supported.
	BuildResponses bool
	// SkipDocumentValidation disables the structural check of the document
	// before compilation (for hand-built documents in tests).
	SkipDocumentValidation bool
	// Logger receives per-endpoint diagnostics (optional)
	Logger Logger
}

// Compile builds request validators for every operation in doc.
func Compile(doc *openapi3.T, opts Options) (*schemaset.Set, error) {
	if doc == nil {
		return nil, &oaserrors.UsageError{Operation: "compiler.Compile", Message: "document is nil"}
	}
	if !opts.BuildRequests {
		return nil, &oaserrors.ConfigError{Option: "BuildRequests", Value: false, Message: "request validators must be built"}
	}
	if opts.BuildResponses {
		return nil, &oaserrors.ConfigError{Option: "BuildResponses", Value: true, Message: "response validation is not supported"}
	}
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	if !opts.SkipDocumentValidation {
		if err := doc.Validate(context.Background()); err != nil {
			return nil, &oaserrors.CompileError{Message: "invalid document", Cause: err}
		}
	}

	endpoints := make(map[string]schemaset.MethodMap)
	if doc.Paths == nil {
		return schemaset.New(endpoints), nil
	}

	paths := doc.Paths.Map()
	raws := make([]string, 0, len(paths))
	for raw := range paths {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	seen := make(map[string]string, len(raws))
	for _, raw := range raws {
		item := paths[raw]
		if item == nil {
			continue
		}
		template := pathutil.CanonicalTemplate(raw)
		if prev, dup := seen[template]; dup {
			return nil, &oaserrors.CompileError{
				Template: template,
				Message:  "paths " + prev + " and " + raw + " map to the same route template",
			}
		}
		seen[template] = raw

		methods := make(schemaset.MethodMap)
		for name, op := range item.Operations() {
			if op == nil {
				continue
			}
			method := httputil.NormalizeMethod(name)
			ep, err := compileOperation(template, method, item, op, log)
			if err != nil {
				return nil, err
			}
			methods[method] = ep
			log.Debug("compiled endpoint",
				"template", template,
				"method", method,
				"operationId", op.OperationID,
				"parameters", ep.Parameters != nil,
				"body", ep.Body != nil)
		}
		endpoints[template] = methods
	}

	return schemaset.New(endpoints), nil
}

func compileOperation(template, method string, item *openapi3.PathItem, op *openapi3.Operation, log Logger) (*schemaset.Endpoint, error) {
	ep := &schemaset.Endpoint{OperationID: op.OperationID}

	params, err := mergeParameters(item.Parameters, op.Parameters)
	if err != nil {
		return nil, &oaserrors.CompileError{Template: template, Method: method, Message: "parameters", Cause: err}
	}

	plan, err := planBody(op.RequestBody)
	if err != nil {
		return nil, &oaserrors.CompileError{Template: template, Method: method, Message: "request body", Cause: err}
	}
	if plan != nil && plan.mediaType != "" {
		log.Debug("selected request body media type", "template", template, "method", method, "mediaType", plan.mediaType)
	}

	var files *openapi3.Schema
	if plan != nil {
		files = plan.files
	}
	if schema := buildParametersSchema(params, files, func(p *openapi3.Parameter) {
		log.Warn("parameter location not validated", "template", template, "method", method, "in", p.In, "name", p.Name)
	}); schema != nil {
		ep.Parameters = &parametersValidator{schema: schema}
	}
	if plan != nil {
		ep.Body = &bodyValidator{schema: plan.schema, required: plan.required, form: plan.form}
	}
	return ep, nil
}
