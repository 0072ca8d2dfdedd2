package adapter

import (
	"net/http"
	"strings"

	"github.com/erraggy/oasguard/internal/pathutil"
)

type netHTTPAdapter struct {
	extractor
}

func (a *netHTTPAdapter) Framework() Framework { return NetHTTP }

// Extract expects a *http.Request served by http.ServeMux, or any handler
// chain when the templates are known (see Config.Templates).
func (a *netHTTPAdapter) Extract(native any) (*Descriptor, error) {
	r, ok := native.(*http.Request)
	if !ok || r == nil {
		return nil, wrongType(NetHTTP, "*http.Request", native)
	}

	if pattern := servePattern(r.Pattern); pattern != "" {
		params := make(map[string]string)
		for _, name := range pathutil.ParamNames(pathutil.CanonicalTemplate(pattern)) {
			params[name] = r.PathValue(name)
		}
		return a.fromRequest(r, pattern, params)
	}

	template, params := a.fallback(r)
	return a.fromRequest(r, template, params)
}

// servePattern strips the method and host from a ServeMux pattern such as
// "GET example.com/pets/{id}", leaving "/pets/{id}".
func servePattern(pattern string) string {
	if _, rest, ok := strings.Cut(pattern, " "); ok {
		pattern = strings.TrimSpace(rest)
	}
	if pattern == "" || pattern[0] == '/' {
		return pattern
	}
	idx := strings.IndexByte(pattern, '/')
	if idx < 0 {
		return ""
	}
	return pattern[idx:]
}
