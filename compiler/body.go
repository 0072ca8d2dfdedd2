package compiler

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasguard/internal/httputil"
)

// bodyPlan is the compiled shape of an operation's request body.
type bodyPlan struct {
	mediaType string
	schema    *openapi3.Schema // nil when only presence is checked
	files     *openapi3.Schema // binary multipart properties, or nil
	required  bool
	form      bool // values arrive as strings and are coerced
}

// planBody picks the media type to validate against and splits binary
// multipart properties into a files schema. It returns nil when the
// operation declares no body or nothing about it can be checked.
func planBody(ref *openapi3.RequestBodyRef) (*bodyPlan, error) {
	if ref == nil {
		return nil, nil
	}
	if ref.Value == nil {
		if ref.Ref != "" {
			return nil, fmt.Errorf("unresolved request body reference %s", ref.Ref)
		}
		return nil, nil
	}
	rb := ref.Value
	plan := &bodyPlan{required: rb.Required}

	mediaType, mt := selectMediaType(rb.Content)
	plan.mediaType = mediaType
	if mt != nil && mt.Schema != nil {
		if mt.Schema.Value == nil {
			return nil, fmt.Errorf("unresolved schema reference %s for %s", mt.Schema.Ref, mediaType)
		}
		plan.schema = mt.Schema.Value
	}

	switch mediaType {
	case httputil.MediaTypeMultipart:
		plan.form = true
		if plan.schema != nil {
			plan.schema, plan.files = splitBinary(plan.schema)
		}
	case httputil.MediaTypeForm:
		plan.form = true
	}

	if plan.schema == nil && !plan.required {
		return nil, nil
	}
	return plan, nil
}

// selectMediaType prefers application/json, then any other JSON media type,
// then multipart/form-data, then urlencoded forms, then the first valid
// media type in sorted order.
func selectMediaType(content openapi3.Content) (string, *openapi3.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rank := func(mt string) int {
		switch base := httputil.MediaType(mt); {
		case base == httputil.MediaTypeJSON:
			return 0
		case httputil.IsJSONMediaType(base):
			return 1
		case base == httputil.MediaTypeMultipart:
			return 2
		case base == httputil.MediaTypeForm:
			return 3
		case httputil.IsValidMediaType(mt):
			return 4
		default:
			return 5
		}
	}

	best := keys[0]
	for _, k := range keys[1:] {
		if rank(k) < rank(best) {
			best = k
		}
	}
	name := httputil.MediaType(best)
	if name == "" {
		name = best
	}
	return name, content[best]
}

// splitBinary separates binary properties (files) from the remaining form fields.
func splitBinary(schema *openapi3.Schema) (body, files *openapi3.Schema) {
	if len(schema.Properties) == 0 {
		return schema, nil
	}

	bodyProps := make(openapi3.Schemas, len(schema.Properties))
	files = newObjectSchema()
	for name, prop := range schema.Properties {
		if prop != nil && isBinary(prop.Value) {
			files.Properties[name] = prop
			continue
		}
		bodyProps[name] = prop
	}
	if len(files.Properties) == 0 {
		return schema, nil
	}

	var bodyRequired []string
	for _, name := range schema.Required {
		if _, ok := files.Properties[name]; ok {
			files.Required = append(files.Required, name)
			continue
		}
		bodyRequired = append(bodyRequired, name)
	}

	cp := *schema
	cp.Properties = bodyProps
	cp.Required = bodyRequired
	return &cp, files
}

func isBinary(s *openapi3.Schema) bool {
	if s == nil {
		return false
	}
	if hasType(s, openapi3.TypeString) && (s.Format == "binary" || s.Format == "base64") {
		return true
	}
	if hasType(s, openapi3.TypeArray) && s.Items != nil {
		return isBinary(s.Items.Value)
	}
	return false
}

func hasType(s *openapi3.Schema, typ string) bool {
	return s != nil && s.Type != nil && s.Type.Includes(typ)
}
