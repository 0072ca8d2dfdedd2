package adapter

import (
	"maps"
	"strings"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/internal/pathutil"
	"github.com/erraggy/oasguard/oaserrors"
)

// Router resolves concrete request paths to canonical route templates.
// It serves descriptors recorded outside a framework (files, MCP calls),
// where no router has matched the request.
type Router struct {
	matchers routeMatchers
}

// NewRouter builds a Router over canonical templates.
func NewRouter(templates []string) (*Router, error) {
	matchers, err := newRouteMatcher(templates)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "Templates", Message: "building route matcher", Cause: err}
	}
	return &Router{matchers: matchers}, nil
}

// Route returns the template matching path and the captured placeholder values.
func (rt *Router) Route(path string) (string, map[string]string, bool) {
	return rt.matchers.match(pathutil.TrimTrailingSlash(path))
}

// Normalize returns a copy of d with Path set to a canonical template.
// Paths in any supported router notation are canonicalized; concrete paths are
// matched against the templates, and the captured values fill PathParams
// entries the descriptor does not already carry. Unmatched concrete paths are
// kept as-is. Header names are lower-cased.
func (rt *Router) Normalize(d *Descriptor) *Descriptor {
	if d == nil {
		return nil
	}
	out := *d
	out.Headers = lowerKeys(d.Headers)
	out.PathParams = maps.Clone(d.PathParams)

	if strings.ContainsAny(d.Path, "{:*") {
		out.Path = pathutil.CanonicalTemplate(d.Path)
		return &out
	}

	template, params, ok := rt.Route(d.Path)
	if !ok {
		out.Path = pathutil.TrimTrailingSlash(d.Path)
		return &out
	}
	out.Path = template
	if out.PathParams == nil {
		out.PathParams = make(map[string]string, len(params))
	}
	for name, value := range params {
		if _, set := out.PathParams[name]; !set {
			out.PathParams[name] = value
		}
	}
	return &out
}

func lowerKeys(headers map[string]any) map[string]any {
	if headers == nil {
		return nil
	}
	out := make(map[string]any, len(headers))
	for k, v := range headers {
		out[httputil.HeaderKey(k)] = v
	}
	return out
}
