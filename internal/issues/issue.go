// Package issues provides the raw error record produced when request data
// fails schema validation.
package issues

import (
	"fmt"
	"strconv"
	"strings"
)

// Location identifies which part of the request an issue was found in.
type Location string

// Location constants. The first four are the sections of the composite
// parameters object; LocationBody is the request payload.
const (
	LocationQuery   Location = "query"
	LocationHeaders Location = "headers"
	LocationPath    Location = "path"
	LocationFiles   Location = "files"
	LocationBody    Location = "body"
)

// Issue represents a single schema violation found in a request.
type Issue struct {
	// Location is the request section the issue belongs to
	Location Location `json:"location" yaml:"location"`
	// Path is the JSON pointer to the offending value, relative to Location
	// (e.g., "/x-api-key" or "/tags/0"). Empty when the whole section is at fault.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Field is the last segment of Path (the property or index at fault)
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Message is the validator's description of the failure
	Message string `json:"message" yaml:"message"`
	// Keyword is the schema keyword that failed (e.g., "required", "type", "enum")
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	// Value is the offending value (optional)
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
	// Allowed lists the permitted values when Keyword is "enum"
	Allowed []any `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

// Target returns the location-qualified path of the issue, e.g. "headers/x-api-key".
func (i Issue) Target() string {
	if i.Location == "" {
		return strings.TrimPrefix(i.Path, "/")
	}
	return string(i.Location) + i.Path
}

// String returns a formatted string representation of the issue.
func (i Issue) String() string {
	if i.Keyword != "" {
		return fmt.Sprintf("✗ %s: %s (%s)", i.Target(), i.Message, i.Keyword)
	}
	return fmt.Sprintf("✗ %s: %s", i.Target(), i.Message)
}

// Beautify renders the issue as a single human-readable sentence that does
// not expose validator internals, e.g.
//
//	body/status value is not one of the allowed values [available, sold]
//
// Unknown properties are named even when the message does not quote them.
func (i Issue) Beautify() string {
	sb := getStringBuilder()
	defer putStringBuilder(sb)

	if target := i.Target(); target != "" {
		sb.WriteString(target)
		sb.WriteByte(' ')
	}
	sb.WriteString(i.Message)

	if i.Keyword == "additionalProperties" && i.Field != "" && !strings.Contains(i.Message, strconv.Quote(i.Field)) {
		sb.WriteString(": ")
		sb.WriteString(i.Field)
	}

	if i.Keyword == "enum" && len(i.Allowed) > 0 {
		sb.WriteString(" [")
		for n, v := range i.Allowed {
			if n > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprint(sb, v)
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
