// Package pathutil provides route-template and JSON-pointer utilities.
//
// # Canonical Route Templates
//
// Routers disagree on placeholder syntax: net/http's ServeMux writes
// "/files/{path...}", gorilla/mux and chi allow "/pets/{id:[0-9]+}", gin and
// echo write "/pets/:id" and "/static/*filepath". Schema lookup is an exact
// string match, so every template stored in a schema set and every template
// reported by a framework adapter is rewritten by [CanonicalTemplate] into
// the OpenAPI form:
//
//	pathutil.CanonicalTemplate("/pets/:id/")          // "/pets/{id}"
//	pathutil.CanonicalTemplate("/pets/{id:[0-9]+}")   // "/pets/{id}"
//	pathutil.CanonicalTemplate("/files/{path...}")    // "/files/{path}"
//
// [ParamNames] lists the placeholders of a canonical template in order.
//
// # JSON Pointers
//
// [Pointer] joins the segments reported by a schema failure into the RFC 6901
// pointer stored on a record:
//
//	pathutil.Pointer([]string{"tags", "0"}) // "/tags/0"
//	pathutil.Pointer([]string{"a/b"})       // "/a~1b"
//
// [ReportFile] resolves and checks the destination of a CLI report.
package pathutil
