package compiler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/internal/issues"
)

// sectionFor maps a parameter location to its section of the composite
// parameters object. Cookie parameters have no section.
var sectionFor = map[string]issues.Location{
	openapi3.ParameterInQuery:  issues.LocationQuery,
	openapi3.ParameterInHeader: issues.LocationHeaders,
	openapi3.ParameterInPath:   issues.LocationPath,
}

// parameterSections lists the sections in the order they appear in the schema.
var parameterSections = []issues.Location{
	issues.LocationQuery,
	issues.LocationHeaders,
	issues.LocationPath,
	issues.LocationFiles,
}

// mergeParameters combines path-level and operation-level parameters.
// An operation parameter replaces the path-level one with the same location and name.
func mergeParameters(pathLevel, opLevel openapi3.Parameters) ([]*openapi3.Parameter, error) {
	var merged []*openapi3.Parameter
	index := make(map[string]int)

	for _, list := range []openapi3.Parameters{pathLevel, opLevel} {
		for _, ref := range list {
			if ref == nil || ref.Value == nil {
				if ref != nil && ref.Ref != "" {
					return nil, fmt.Errorf("unresolved parameter reference %s", ref.Ref)
				}
				return nil, errors.New("empty parameter")
			}
			p := ref.Value
			key := p.In + ":" + p.Name
			if p.In == openapi3.ParameterInHeader {
				key = p.In + ":" + httputil.HeaderKey(p.Name)
			}
			if n, ok := index[key]; ok {
				merged[n] = p
				continue
			}
			index[key] = len(merged)
			merged = append(merged, p)
		}
	}
	return merged, nil
}

// parameterSchema returns the schema a parameter's value is checked against.
// Parameters described with content use the schema of their only media type.
func parameterSchema(p *openapi3.Parameter) *openapi3.Schema {
	if p.Schema != nil && p.Schema.Value != nil {
		return p.Schema.Value
	}
	if len(p.Content) > 0 {
		keys := make([]string, 0, len(p.Content))
		for k := range p.Content {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if mt := p.Content[keys[0]]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return &openapi3.Schema{}
}

// buildParametersSchema builds the composite object schema for params plus the
// optional files section. It returns nil when nothing would be checked.
// skipped is called for parameters in locations that have no section.
func buildParametersSchema(params []*openapi3.Parameter, files *openapi3.Schema, skipped func(*openapi3.Parameter)) *openapi3.Schema {
	sections := make(map[issues.Location]*openapi3.Schema, len(parameterSections))
	for _, loc := range parameterSections {
		sections[loc] = newObjectSchema()
	}

	count := 0
	for _, p := range params {
		loc, ok := sectionFor[p.In]
		if !ok {
			skipped(p)
			continue
		}
		name := p.Name
		if loc == issues.LocationHeaders {
			name = httputil.HeaderKey(name)
		}
		section := sections[loc]
		section.Properties[name] = openapi3.NewSchemaRef("", parameterSchema(p))
		if p.Required || loc == issues.LocationPath {
			section.Required = append(section.Required, name)
		}
		count++
	}
	if files != nil && len(files.Properties) > 0 {
		sections[issues.LocationFiles] = files
		count += len(files.Properties)
	}
	if count == 0 {
		return nil
	}

	root := newObjectSchema()
	for _, loc := range parameterSections {
		root.Properties[string(loc)] = openapi3.NewSchemaRef("", sections[loc])
	}
	return root
}

func newObjectSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: make(openapi3.Schemas),
	}
}
