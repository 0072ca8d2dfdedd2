package mcpserver

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/compiler"
	"github.com/erraggy/oasguard/httpvalidator"
	"github.com/erraggy/oasguard/schemaset"
)

// specInput represents the two ways an OpenAPI document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI 2.0 or 3.x document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// compiledSpec is a compiled document together with the router used to map
// concrete request paths onto its templates.
type compiledSpec struct {
	set    *schemaset.Set
	router *adapter.Router
}

// resolve loads and compiles the document from whichever input was provided,
// using the cache when enabled.
func (s *server) resolve(in specInput) (*compiledSpec, error) {
	if (in.File == "") == (in.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	if in.Content != "" && int64(len(in.Content)) > s.cfg.MCP.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASGUARD_MCP_MAX_INLINE_SIZE to increase",
			len(in.Content), s.cfg.MCP.MaxInlineSize)
	}

	var key string
	if s.cfg.MCP.CacheEnabled {
		key = makeCacheKey(in)
	}
	if key != "" {
		if cached := s.cache.get(key); cached != nil {
			return cached, nil
		}
	}

	var (
		doc *openapi3.T
		err error
	)
	if in.File != "" {
		doc, err = compiler.LoadFile(in.File)
	} else {
		doc, err = compiler.LoadData([]byte(in.Content))
	}
	if err != nil {
		return nil, err
	}

	set, err := compiler.Compile(doc, compiler.Options{
		BuildRequests: true,
		Logger:        httpvalidator.NewSlogAdapter(s.logger),
	})
	if err != nil {
		return nil, err
	}
	router, err := adapter.NewRouter(set.Templates())
	if err != nil {
		return nil, err
	}

	spec := &compiledSpec{set: set, router: router}
	if key != "" {
		s.cache.putWithTTL(key, spec, s.cfg.MCP.CacheTTL)
	}
	s.logger.Debug("document compiled", "templates", set.Len(), "endpoints", set.EndpointCount())
	return spec, nil
}
