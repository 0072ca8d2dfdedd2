// Package adapter translates framework-native requests into a normalized
// [Descriptor] that the validation core consumes.
//
// An [Adapter] is chosen once, by framework name, when a validator is built:
//
//	a, err := adapter.New(adapter.Chi, adapter.Config{})
//	d, err := a.Extract(r) // r is the *http.Request chi is serving
//
// Every adapter reports the matched route template in canonical form
// ({name} placeholders, no trailing slash), so ":id" (gin, echo), "{id:[0-9]+}"
// (chi, gorilla) and "{path...}" (net/http) all become "{id}" or "{path}".
//
// Header names are lower-cased and repeated values joined with ", ". A query
// key with one value is a string; repeated keys become a []any. The request
// body is read up to [Config.MaxBodySize] and restored afterwards so the
// downstream handler can read it again.
//
// # Route templates
//
// chi only knows the full route pattern after routing. Attach the middleware
// inline with r.With or inside r.Group rather than with r.Use on the root router.
// For net/http, the template comes from [http.Request.Pattern] (Go 1.23+);
// requests served without a ServeMux pattern are matched against
// [Config.Templates] instead.
package adapter
