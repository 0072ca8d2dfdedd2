// Package oasguard validates incoming HTTP requests against an OpenAPI
// 2.0 or 3.x document before they reach application handlers.
//
// # Overview
//
// A document is compiled once into a schema set: for every route template
// and method it declares, one validator for the request parameters (query,
// headers, path, files) and one for the request body. At request time an
// adapter reads the framework's native request into a normalized descriptor,
// the matching validators run, and their failures are merged into a single
// error that the caller can return as a 400 response.
//
// The module is organized as:
//
//   - compiler: load a document with kin-openapi and compile it into a schema set
//   - schemaset: the immutable template → method → validators lookup
//   - adapter: read net/http, chi, gorilla/mux, gin or echo requests into descriptors
//   - httpvalidator: the validator (options, error formatting, reload)
//   - middleware: ready-made middleware for each supported framework
//   - oaserrors: typed errors and sentinels for errors.Is / errors.As
//
// # Quick Start
//
//	v, err := httpvalidator.NewFromFile("openapi.yaml",
//		httpvalidator.WithFramework(adapter.Chi),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r := chi.NewRouter()
//	r.With(middleware.HTTP(v)).Post("/pets", createPet)
//
// Requests whose route or method the document does not declare pass through
// unvalidated. Failed requests receive a JSON body:
//
//	{"message": "Input validation error", "errors": [...]}
//
// # Command Line
//
// The oasguard command checks recorded requests against a document, lists the
// compiled endpoints, and serves both operations to MCP clients:
//
//	oasguard check --spec openapi.yaml requests/*.yaml
//	oasguard routes --spec openapi.yaml
//	oasguard mcp
package oasguard
