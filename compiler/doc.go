// Package compiler turns an OpenAPI document into a [schemaset.Set] of
// request validators.
//
// Documents are read with kin-openapi. OAS 3.x documents are loaded directly;
// OAS 2.0 (Swagger) documents are detected by their root "swagger" key and
// converted to OAS 3 before compilation.
//
//	doc, err := compiler.LoadFile("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	set, err := compiler.Compile(doc, compiler.Options{BuildRequests: true})
//
// For every (template, method) pair the compiler builds up to two validators:
//
//   - Parameters checks an object with "query", "headers", "path" and "files"
//     sections. Path-level and operation-level parameters are merged, header
//     names are lower-cased, and string inputs are coerced to the declared
//     scalar or array type before validation.
//   - Body checks the decoded payload against the schema of the preferred
//     media type (JSON, then +json, then multipart, then urlencoded). Binary
//     multipart properties are validated in the "files" section instead.
//
// Route templates are stored in canonical form (see [pathutil.CanonicalTemplate]).
// Response schemas are never compiled.
package compiler
