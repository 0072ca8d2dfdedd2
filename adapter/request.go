package adapter

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/internal/pathutil"
)

// extractor holds the extraction logic shared by every adapter.
type extractor struct {
	maxBodySize int64
	matcher     routeMatchers
}

// fromRequest builds a descriptor for r. template may be in any supported
// router notation; it is canonicalized here.
func (e extractor) fromRequest(r *http.Request, template string, pathParams map[string]string) (*Descriptor, error) {
	body, files, err := e.readBody(r)
	if err != nil {
		return nil, err
	}
	if pathParams == nil {
		pathParams = map[string]string{}
	}
	return &Descriptor{
		Path:       pathutil.CanonicalTemplate(template),
		Method:     r.Method,
		Headers:    headersOf(r),
		PathParams: pathParams,
		Query:      valuesToMap(r.URL.Query()),
		Files:      files,
		Body:       body,
	}, nil
}

// fallback matches the concrete request path against the known templates.
// Unmatched paths keep the concrete path, which resolves to no endpoint.
func (e extractor) fallback(r *http.Request) (string, map[string]string) {
	path := pathutil.TrimTrailingSlash(r.URL.Path)
	if template, params, ok := e.matcher.match(path); ok {
		return template, params
	}
	return path, nil
}

func headersOf(r *http.Request) map[string]any {
	headers := make(map[string]any, len(r.Header)+1)
	for name, values := range r.Header {
		headers[httputil.HeaderKey(name)] = strings.Join(values, ", ")
	}
	// net/http moves Host out of the header map.
	if r.Host != "" {
		if _, ok := headers["host"]; !ok {
			headers["host"] = r.Host
		}
	}
	return headers
}

// valuesToMap keeps single values as strings and repeated keys as []any.
func valuesToMap(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vs := range values {
		switch len(vs) {
		case 0:
			out[key] = ""
		case 1:
			out[key] = vs[0]
		default:
			list := make([]any, len(vs))
			for n, v := range vs {
				list[n] = v
			}
			out[key] = list
		}
	}
	return out
}

// appendValue adds v under key, turning a repeated key into a []any.
func appendValue(m map[string]any, key string, v any) {
	existing, ok := m[key]
	if !ok {
		m[key] = v
		return
	}
	if list, ok := existing.([]any); ok {
		m[key] = append(list, v)
		return
	}
	m[key] = []any{existing, v}
}
