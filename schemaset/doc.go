// Package schemaset holds the compiled validators for an OpenAPI document,
// keyed by route template and HTTP method.
//
// A [Set] is produced once (usually by the compiler package) and never mutated
// afterwards, so it can be shared by any number of concurrent requests.
//
// # Resolving endpoints
//
// [Set.Resolve] is an exact lookup: callers pass a canonical route template
// (placeholders written as {name}, no trailing slash) and a lower-case method.
// Unknown templates and methods resolve to (nil, false); this is not an error,
// requests for undocumented endpoints are allowed through.
//
//	ep, ok := set.Resolve("/pets/{petId}", "get")
//	if !ok {
//		return nil // no schema, nothing to validate
//	}
//	records := ep.Parameters.Validate(params)
package schemaset
