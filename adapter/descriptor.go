package adapter

import (
	"fmt"

	"github.com/erraggy/oasguard/internal/issues"
)

// Descriptor is the framework-independent view of a request.
type Descriptor struct {
	// Path is the canonical route template the request matched (not the concrete path)
	Path string `json:"path" yaml:"path"`
	// Method is the HTTP method as received
	Method string `json:"method" yaml:"method"`
	// Headers maps lower-case header names to their (joined) values
	Headers map[string]any `json:"headers,omitempty" yaml:"headers,omitempty"`
	// PathParams maps placeholder names to the concrete segment values
	PathParams map[string]string `json:"pathParams,omitempty" yaml:"pathParams,omitempty"`
	// Query maps query keys to a string, or a []any for repeated keys
	Query map[string]any `json:"query,omitempty" yaml:"query,omitempty"`
	// Files maps multipart field names to a filename, or a []any of filenames
	Files map[string]any `json:"files,omitempty" yaml:"files,omitempty"`
	// Body is the decoded payload, or nil when the request has none
	Body any `json:"body,omitempty" yaml:"body,omitempty"`
}

// Parameters returns the composite object checked by a parameters validator.
// Every section is present, even when empty.
func (d *Descriptor) Parameters() map[string]any {
	path := make(map[string]any, len(d.PathParams))
	for k, v := range d.PathParams {
		path[k] = v
	}
	return map[string]any{
		string(issues.LocationQuery):   orEmpty(d.Query),
		string(issues.LocationHeaders): orEmpty(d.Headers),
		string(issues.LocationPath):    path,
		string(issues.LocationFiles):   orEmpty(d.Files),
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
