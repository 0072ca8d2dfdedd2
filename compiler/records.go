package compiler

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasguard/internal/issues"
	"github.com/erraggy/oasguard/internal/pathutil"
	"github.com/erraggy/oasguard/schemaset"
)

// toRecords flattens a VisitJSON error into records in reported order.
// When loc is empty the first pointer segment names the location, as in the
// composite parameters object.
func toRecords(err error, loc issues.Location) []schemaset.Record {
	if err == nil {
		return nil
	}
	return appendRecords(nil, err, loc)
}

func appendRecords(out []schemaset.Record, err error, loc issues.Location) []schemaset.Record {
	switch e := err.(type) { //nolint:errorlint // MultiError.As matches its elements
	case openapi3.MultiError:
		for _, inner := range e {
			out = appendRecords(out, inner, loc)
		}
		return out
	case *openapi3.SchemaError:
		return append(out, schemaErrorRecord(e, loc))
	default:
		return append(out, schemaset.Record{Location: loc, Message: err.Error()})
	}
}

func schemaErrorRecord(se *openapi3.SchemaError, loc issues.Location) schemaset.Record {
	segments := se.JSONPointer()
	if loc == "" && len(segments) > 0 {
		loc = issues.Location(segments[0])
		segments = segments[1:]
	}

	keyword := keywordFor(se)
	value := se.Value
	if keyword == "additionalProperties" {
		// The pointer stops at the enclosing object; the key is only named
		// in the reason.
		if name, ok := unsupportedProperty(se.Reason); ok {
			segments = append(append([]string(nil), segments...), name)
			if obj, isObj := value.(map[string]any); isObj {
				value = obj[name]
			}
		}
	}

	rec := schemaset.Record{
		Location: loc,
		Path:     pathutil.Pointer(segments),
		Message:  se.Reason,
		Keyword:  keyword,
		Value:    value,
	}
	if len(segments) > 0 {
		rec.Field = segments[len(segments)-1]
	}

	switch rec.Keyword {
	case "required":
		// Value is the enclosing object; the missing property is in Field.
		rec.Value = nil
	case "enum":
		if se.Schema != nil && len(se.Schema.Enum) > 0 {
			rec.Allowed = append([]any(nil), se.Schema.Enum...)
			if msg, _, ok := strings.Cut(rec.Message, " ["); ok {
				rec.Message = msg
			}
		}
	}
	return rec
}

// keywordFor names the failing schema keyword. kin-openapi reports unknown
// properties under "properties"; those are additionalProperties failures.
func keywordFor(se *openapi3.SchemaError) string {
	if se.SchemaField == "properties" && strings.Contains(se.Reason, "unsupported") {
		return "additionalProperties"
	}
	return se.SchemaField
}

// unsupportedProperty extracts X from a `property "X" is unsupported` reason.
func unsupportedProperty(reason string) (string, bool) {
	rest, ok := strings.CutPrefix(reason, "property ")
	if !ok {
		return "", false
	}
	quoted, ok := strings.CutSuffix(rest, " is unsupported")
	if !ok {
		return "", false
	}
	name, err := strconv.Unquote(quoted)
	if err != nil {
		return "", false
	}
	return name, true
}
