// Package httputil provides HTTP-related normalization utilities and constants.
package httputil

import (
	"mime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HTTP Method Constants. Schema sets key operations by these lower-case names.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Media type constants recognized when decoding request bodies.
const (
	MediaTypeJSON      = "application/json"
	MediaTypeForm      = "application/x-www-form-urlencoded"
	MediaTypeMultipart = "multipart/form-data"
)

var supportedMethods = map[string]bool{
	MethodGet: true, MethodPut: true, MethodPost: true, MethodDelete: true,
	MethodOptions: true, MethodHead: true, MethodPatch: true, MethodTrace: true,
}

// NormalizeMethod returns the lower-case, trimmed form of an HTTP method.
func NormalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

// IsSupportedMethod reports whether a normalized method can carry an OpenAPI operation.
func IsSupportedMethod(method string) bool {
	return supportedMethods[method]
}

// HeaderKey folds a header name to the lower-case form used as the key of the
// headers section, so "X-Api-Key", "x-api-key" and "X-API-KEY" collide.
// A cases.Caser is stateful and unsafe for concurrent use; do not hoist it
// into a package variable.
func HeaderKey(name string) string {
	return cases.Lower(language.Und).String(name)
}

// MediaType returns the lower-case media type of a Content-Type value without
// parameters. Unparseable values yield "".
func MediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

// IsJSONMediaType reports whether mt is application/json or a +json / json variant.
func IsJSONMediaType(mt string) bool {
	if mt == MediaTypeJSON {
		return true
	}
	_, sub, ok := strings.Cut(mt, "/")
	return ok && (sub == "json" || strings.HasSuffix(sub, "+json"))
}

// IsValidMediaType reports whether mediaType is a well-formed "type/subtype"
// value, optionally with parameters. "*/*" and "type/*" are accepted;
// "*/subtype" and values without a slash are not.
func IsValidMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	typ, sub, ok := strings.Cut(mt, "/")
	if !ok || typ == "" || sub == "" {
		return false
	}
	return typ != "*" || sub == "*"
}
