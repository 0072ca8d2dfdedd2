package schemaset

import (
	"sort"

	"github.com/erraggy/oasguard/internal/issues"
)

// Record is a single raw validation failure reported by a [Validator].
type Record = issues.Issue

// Validator checks one value against a compiled schema.
//
// Validate returns the failures for data in the order the schema engine reported
// them; an empty result means the value is valid. Records are returned per call,
// so a Validator may be used by concurrent requests.
type Validator interface {
	Validate(data any) []Record
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(data any) []Record

// Validate calls f(data).
func (f ValidatorFunc) Validate(data any) []Record {
	return f(data)
}

// Endpoint holds the validators compiled for one (template, method) pair.
// Either validator may be nil, meaning that part of the request is not checked.
type Endpoint struct {
	// Parameters validates the composite {query, headers, path, files} object
	Parameters Validator
	// Body validates the decoded request payload
	Body Validator
	// OperationID is the operationId declared in the document, if any
	OperationID string
}

// MethodMap maps lower-case HTTP methods to their compiled endpoint.
type MethodMap map[string]*Endpoint

// EndpointInfo describes one compiled endpoint for listings.
type EndpointInfo struct {
	Template      string `json:"template" yaml:"template"`
	Method        string `json:"method" yaml:"method"`
	OperationID   string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	HasParameters bool   `json:"hasParameters" yaml:"hasParameters"`
	HasBody       bool   `json:"hasBody" yaml:"hasBody"`
}

// Set is an immutable collection of compiled endpoints.
type Set struct {
	endpoints map[string]MethodMap
}

// New builds a Set from a template → method → endpoint map.
// The outer and inner maps are copied; nil endpoints are skipped.
func New(endpoints map[string]MethodMap) *Set {
	s := &Set{endpoints: make(map[string]MethodMap, len(endpoints))}
	for template, methods := range endpoints {
		mm := make(MethodMap, len(methods))
		for method, ep := range methods {
			if ep == nil {
				continue
			}
			mm[method] = ep
		}
		s.endpoints[template] = mm
	}
	return s
}

// Resolve returns the endpoint stored for the exact template and method.
// Inputs are not normalized. A nil Set resolves nothing.
func (s *Set) Resolve(template, method string) (*Endpoint, bool) {
	if s == nil {
		return nil, false
	}
	methods, ok := s.endpoints[template]
	if !ok {
		return nil, false
	}
	ep, ok := methods[method]
	if !ok {
		return nil, false
	}
	return ep, true
}

// Len returns the number of route templates in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.endpoints)
}

// Templates returns the route templates in sorted order.
func (s *Set) Templates() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.endpoints))
	for template := range s.endpoints {
		out = append(out, template)
	}
	sort.Strings(out)
	return out
}

// Endpoints lists every compiled endpoint sorted by template, then method.
func (s *Set) Endpoints() []EndpointInfo {
	if s == nil {
		return nil
	}
	var out []EndpointInfo
	for _, template := range s.Templates() {
		methods := s.endpoints[template]
		names := make([]string, 0, len(methods))
		for m := range methods {
			names = append(names, m)
		}
		sort.Strings(names)
		for _, m := range names {
			ep := methods[m]
			out = append(out, EndpointInfo{
				Template:      template,
				Method:        m,
				OperationID:   ep.OperationID,
				HasParameters: ep.Parameters != nil,
				HasBody:       ep.Body != nil,
			})
		}
	}
	return out
}

// EndpointCount returns the total number of (template, method) pairs.
func (s *Set) EndpointCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, methods := range s.endpoints {
		n += len(methods)
	}
	return n
}
