// Package oaserrors provides structured error types for oasguard.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between a request that failed
// schema validation, a caller that misused the API, and a document that
// could not be compiled.
//
// # Error Categories
//
//   - ParseError: the OpenAPI document could not be read or decoded
//   - CompileError: the document is invalid or a schema could not be compiled
//   - UsageError: a programming-contract violation (e.g. a request descriptor without a method)
//   - ResourceLimitError: a request body exceeded the configured size limit
//   - ConfigError: invalid configuration or options
//
// Requests that fail validation are reported with the input validation error
// from the httpvalidator package, which matches [ErrInputValidation].
//
// # Usage with errors.Is
//
//	err := v.Validate(req)
//	switch {
//	case err == nil:
//	    // request is valid, or no schema governs the route
//	case errors.Is(err, oaserrors.ErrInputValidation):
//	    // respond with 400
//	case errors.Is(err, oaserrors.ErrInvalidUsage):
//	    // bug in the caller; respond with 500
//	}
//
// # Usage with errors.As
//
//	var limitErr *oaserrors.ResourceLimitError
//	if errors.As(err, &limitErr) {
//	    log.Printf("body of %d bytes exceeds %d", limitErr.Actual, limitErr.Limit)
//	}
package oaserrors
