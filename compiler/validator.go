package compiler

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasguard/internal/issues"
	"github.com/erraggy/oasguard/schemaset"
)

// visitOptions reports every failure instead of stopping at the first, and
// treats readOnly properties as absent from requests.
func visitOptions() []openapi3.SchemaValidationOption {
	return []openapi3.SchemaValidationOption{
		openapi3.MultiErrors(),
		openapi3.VisitAsRequest(),
	}
}

// parametersValidator checks the composite {query, headers, path, files} object.
type parametersValidator struct {
	schema *openapi3.Schema
}

func (v *parametersValidator) Validate(data any) []schemaset.Record {
	if m, ok := data.(map[string]any); ok {
		data = coerceSections(v.schema, m)
	}
	return toRecords(v.schema.VisitJSON(data, visitOptions()...), "")
}

// bodyValidator checks the decoded request payload.
type bodyValidator struct {
	schema   *openapi3.Schema
	required bool
	form     bool
}

func (v *bodyValidator) Validate(data any) []schemaset.Record {
	if data == nil {
		if v.required {
			return []schemaset.Record{{
				Location: issues.LocationBody,
				Message:  "request body is required",
				Keyword:  "required",
			}}
		}
		return nil
	}
	if v.schema == nil {
		return nil
	}
	if m, ok := data.(map[string]any); ok && v.form {
		data = coerceObject(v.schema, m)
	}
	return toRecords(v.schema.VisitJSON(data, visitOptions()...), issues.LocationBody)
}
