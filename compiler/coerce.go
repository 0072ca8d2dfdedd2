package compiler

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// coerceValue converts string inputs (query values, headers, path segments,
// form fields) to the type the schema declares. Values that cannot be
// converted are returned unchanged so the schema reports the type mismatch.
func coerceValue(schema *openapi3.Schema, v any) any {
	if schema == nil {
		return v
	}
	switch val := v.(type) {
	case string:
		switch {
		case hasType(schema, openapi3.TypeArray):
			return []any{coerceValue(itemSchema(schema), val)}
		case hasType(schema, openapi3.TypeInteger):
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				return float64(n)
			}
		case hasType(schema, openapi3.TypeNumber):
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return f
			}
		case hasType(schema, openapi3.TypeBoolean):
			if b, err := strconv.ParseBool(val); err == nil {
				return b
			}
		}
	case []any:
		if !hasType(schema, openapi3.TypeArray) {
			return v
		}
		items := itemSchema(schema)
		out := make([]any, len(val))
		for n, item := range val {
			out[n] = coerceValue(items, item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for n, item := range val {
			out[n] = item
		}
		return coerceValue(schema, out)
	}
	return v
}

// coerceObject returns a copy of m with every declared property coerced.
// The input map is never modified.
func coerceObject(schema *openapi3.Schema, m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if prop, ok := schema.Properties[k]; ok && prop != nil {
			v = coerceValue(prop.Value, v)
		}
		out[k] = v
	}
	return out
}

// coerceSections coerces each section of the composite parameters object.
func coerceSections(schema *openapi3.Schema, data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for name, section := range data {
		prop, ok := schema.Properties[name]
		if !ok || prop == nil || prop.Value == nil {
			out[name] = section
			continue
		}
		switch s := section.(type) {
		case map[string]any:
			out[name] = coerceObject(prop.Value, s)
		case map[string]string:
			m := make(map[string]any, len(s))
			for k, v := range s {
				m[k] = v
			}
			out[name] = coerceObject(prop.Value, m)
		default:
			out[name] = section
		}
	}
	return out
}

func itemSchema(s *openapi3.Schema) *openapi3.Schema {
	if s.Items == nil {
		return nil
	}
	return s.Items.Value
}
