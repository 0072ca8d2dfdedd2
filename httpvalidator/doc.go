// Package httpvalidator validates incoming HTTP requests against the request
// schemas of an OpenAPI document.
//
// A [Validator] is built once from a compiled [schemaset.Set] and a fixed set
// of options. Each request is turned into an [adapter.Descriptor] by the
// adapter of the configured framework, its route template and method are
// looked up in the set, and the parameters and body validators run. Requests
// whose template or method has no schema are allowed through.
//
// # Basic Usage
//
//	v, err := httpvalidator.NewFromFile("openapi.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	http.HandleFunc("POST /pets", func(w http.ResponseWriter, r *http.Request) {
//	    if err := v.Validate(r); err != nil {
//	        var inputErr *httpvalidator.InputValidationError
//	        if errors.As(err, &inputErr) {
//	            w.WriteHeader(inputErr.StatusCode())
//	            _ = json.NewEncoder(w).Encode(inputErr)
//	            return
//	        }
//	        http.Error(w, err.Error(), http.StatusInternalServerError)
//	        return
//	    }
//	    // ...
//	})
//
// The middleware package wraps this pattern for net/http, chi, gorilla/mux,
// gin and echo.
//
// # Errors
//
// Validation failures are returned as *[InputValidationError], which matches
// oaserrors.ErrInputValidation with errors.Is. Parameter records always come
// before body records. [WithFirstError] keeps only the first record and
// [WithBeautifyErrors] renders records as messages such as
//
//	headers/x-key property "x-key" is missing
//
// A custom [ErrorFormatter] replaces the default shape entirely.
//
// Calling ValidateDescriptor without a descriptor or method returns an
// *oaserrors.UsageError; bodies above the size limit return an
// *oaserrors.ResourceLimitError.
//
// # Reloading
//
// [Validator.Reload] swaps in a new schema set atomically; concurrent
// validations observe either the old or the new set, never a mix.
package httpvalidator
