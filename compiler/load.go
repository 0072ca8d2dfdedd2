package compiler

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/oaserrors"
)

// LoadFile reads an OpenAPI 2.0 or 3.x document from path.
// External references relative to the file are resolved for OAS 3.x documents.
func LoadFile(path string) (*openapi3.T, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "reading document", Cause: err}
	}

	raw, err := decodeRaw(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "decoding document", Cause: err}
	}
	if isSwagger(raw) {
		doc, err := convertSwagger(raw)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: path, Message: "converting OAS 2.0 document", Cause: err}
		}
		return doc, nil
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	// The default reader caches by URI for the whole process, which would
	// serve the first version of a file forever.
	loader.ReadFromURIFunc = openapi3.ReadFromURIs(openapi3.ReadFromFile)
	doc, err := loader.LoadFromDataWithPath(data, &url.URL{Path: filepath.ToSlash(path)})
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "loading document", Cause: err}
	}
	return doc, nil
}

// LoadData reads an OpenAPI 2.0 or 3.x document from YAML or JSON bytes.
// External references are not followed.
func LoadData(data []byte) (*openapi3.T, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "decoding document", Cause: err}
	}
	if isSwagger(raw) {
		doc, err := convertSwagger(raw)
		if err != nil {
			return nil, &oaserrors.ParseError{Message: "converting OAS 2.0 document", Cause: err}
		}
		return doc, nil
	}

	doc, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "loading document", Cause: err}
	}
	return doc, nil
}

func decodeRaw(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("document is empty")
	}
	return raw, nil
}

func isSwagger(raw map[string]any) bool {
	_, ok := raw["swagger"]
	return ok
}

// convertSwagger decodes an OAS 2.0 document through JSON, since openapi2.T
// only implements JSON unmarshaling, and converts it to OAS 3.
func convertSwagger(raw map[string]any) (*openapi3.T, error) {
	data, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return nil, err
	}
	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&doc2)
}

// jsonCompatible rewrites YAML mappings with non-string keys (such as numeric
// response codes) into map[string]any so they can be marshaled as JSON.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonCompatible(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for n, item := range val {
			out[n] = jsonCompatible(item)
		}
		return out
	default:
		return v
	}
}
