package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/httpvalidator"
	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/internal/issues"
	"github.com/erraggy/oasguard/schemaset"
)

type requestInput struct {
	Method     string            `json:"method"                jsonschema:"HTTP method, e.g. POST"`
	Path       string            `json:"path"                  jsonschema:"Route template (/pets/{petId}) or concrete path (/pets/42)"`
	Headers    map[string]any    `json:"headers,omitempty"     jsonschema:"Request headers; names are case-insensitive"`
	Query      map[string]any    `json:"query,omitempty"       jsonschema:"Query parameters; use an array for repeated keys"`
	PathParams map[string]string `json:"path_params,omitempty" jsonschema:"Path placeholder values; filled from a concrete path when omitted"`
	Files      map[string]any    `json:"files,omitempty"       jsonschema:"Uploaded multipart files as field name to filename"`
	Body       any               `json:"body,omitempty"        jsonschema:"Decoded request body"`
}

type validateRequestInput struct {
	Spec       specInput    `json:"spec"                  jsonschema:"The OpenAPI document to validate against"`
	Request    requestInput `json:"request"               jsonschema:"The request to validate"`
	FirstError *bool        `json:"first_error,omitempty" jsonschema:"Report only the first failure"`
	Beautify   *bool        `json:"beautify,omitempty"    jsonschema:"Also return one human-readable message per failure"`
}

type validateRequestOutput struct {
	Valid      bool               `json:"valid"`
	Matched    bool               `json:"matched"`
	Template   string             `json:"template"`
	Method     string             `json:"method"`
	ErrorCount int                `json:"error_count"`
	Errors     []schemaset.Record `json:"errors,omitempty"`
	Messages   []string           `json:"messages,omitempty"`
}

func (s *server) handleValidateRequest(_ context.Context, _ *mcp.CallToolRequest, input validateRequestInput) (*mcp.CallToolResult, validateRequestOutput, error) {
	firstError := s.cfg.Validator.FirstError
	if input.FirstError != nil {
		firstError = *input.FirstError
	}
	beautify := s.cfg.Validator.BeautifyErrors
	if input.Beautify != nil {
		beautify = *input.Beautify
	}

	spec, err := s.resolve(input.Spec)
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}

	d := spec.router.Normalize(&adapter.Descriptor{
		Path:       input.Request.Path,
		Method:     input.Request.Method,
		Headers:    input.Request.Headers,
		PathParams: input.Request.PathParams,
		Query:      input.Request.Query,
		Files:      input.Request.Files,
		Body:       input.Request.Body,
	})

	v, err := httpvalidator.New(spec.set,
		httpvalidator.WithFirstError(firstError),
		httpvalidator.WithLogger(httpvalidator.NewSlogAdapter(s.logger)),
	)
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}

	method := httputil.NormalizeMethod(d.Method)
	_, matched := spec.set.Resolve(d.Path, method)
	output := validateRequestOutput{
		Valid:    true,
		Matched:  matched,
		Template: d.Path,
		Method:   method,
	}

	err = v.ValidateDescriptor(d)
	if err == nil {
		return nil, output, nil
	}
	var inputErr *httpvalidator.InputValidationError
	if !errors.As(err, &inputErr) {
		return errResult(err), validateRequestOutput{}, nil
	}

	output.Valid = false
	output.ErrorCount = inputErr.Len()
	output.Errors = inputErr.Errors
	if beautify {
		output.Messages = issues.Messages(inputErr.Errors)
	}
	return nil, output, nil
}
