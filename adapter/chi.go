package adapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type chiAdapter struct {
	extractor
}

func (a *chiAdapter) Framework() Framework { return Chi }

// Extract expects the *http.Request chi is serving. The route pattern is only
// complete once chi has routed the request.
func (a *chiAdapter) Extract(native any) (*Descriptor, error) {
	r, ok := native.(*http.Request)
	if !ok || r == nil {
		return nil, wrongType(Chi, "*http.Request", native)
	}

	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.RoutePattern() == "" {
		template, params := a.fallback(r)
		return a.fromRequest(r, template, params)
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for n, key := range rctx.URLParams.Keys {
		if key == "*" || n >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[n]
	}
	return a.fromRequest(r, rctx.RoutePattern(), params)
}
