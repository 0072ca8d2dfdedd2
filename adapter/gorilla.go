package adapter

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/erraggy/oasguard/internal/pathutil"
)

type gorillaAdapter struct {
	extractor
}

func (a *gorillaAdapter) Framework() Framework { return Gorilla }

// Extract expects the *http.Request a gorilla/mux router is serving.
func (a *gorillaAdapter) Extract(native any) (*Descriptor, error) {
	r, ok := native.(*http.Request)
	if !ok || r == nil {
		return nil, wrongType(Gorilla, "*http.Request", native)
	}

	route := mux.CurrentRoute(r)
	if route == nil {
		template, params := a.fallback(r)
		return a.fromRequest(r, template, params)
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		template, params := a.fallback(r)
		return a.fromRequest(r, template, params)
	}

	// mux.Vars also carries host and query variables; keep the path ones.
	vars := mux.Vars(r)
	params := make(map[string]string)
	for _, name := range pathutil.ParamNames(pathutil.CanonicalTemplate(tpl)) {
		if v, ok := vars[name]; ok {
			params[name] = v
		}
	}
	return a.fromRequest(r, tpl, params)
}
