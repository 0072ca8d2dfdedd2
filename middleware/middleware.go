// Package middleware plugs a request validator into net/http, chi,
// gorilla/mux, gin and echo handler chains.
//
// The validator must be built for the matching framework:
//
//	v, _ := httpvalidator.NewFromFile("openapi.yaml", httpvalidator.WithFramework(adapter.Chi))
//	r := chi.NewRouter()
//	r.With(middleware.HTTP(v)).Post("/pets", createPet)
//
// Failed requests are answered with a JSON body and a status derived from the
// error (see StatusCode); valid requests continue down the chain with their
// body intact.
package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labstack/echo/v4"

	"github.com/erraggy/oasguard/oaserrors"
)

// Validator validates a framework-native request.
// *httpvalidator.Validator satisfies it.
type Validator interface {
	Validate(native any) error
}

// ErrorHandler writes the response for a request that failed validation.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures the middleware.
type Option func(*config)

type config struct {
	onError ErrorHandler
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		if h != nil {
			c.onError = h
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// StatusCode maps a validation error to an HTTP status: the error's own
// StatusCode() when it has one (400 for input validation), 413 for oversized
// bodies, 500 for usage and configuration errors, and 400 otherwise.
func StatusCode(err error) int {
	var coded interface{ StatusCode() int }
	switch {
	case errors.As(err, &coded):
		return coded.StatusCode()
	case errors.Is(err, oaserrors.ErrResourceLimit):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, oaserrors.ErrInvalidUsage), errors.Is(err, oaserrors.ErrConfig):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Body returns the JSON response body for err. Errors that marshal themselves
// are used as-is; others become {"message": err.Error()}.
func Body(err error) any {
	var m json.Marshaler
	if errors.As(err, &m) {
		return m
	}
	return map[string]string{"message": err.Error()}
}

// DefaultErrorHandler writes Body(err) as JSON with StatusCode(err).
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(err))
	_ = json.NewEncoder(w).Encode(Body(err))
}

// HTTP returns net/http middleware for validators built for the nethttp,
// chi or gorilla frameworks.
func HTTP(v Validator, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := v.Validate(r); err != nil {
				cfg.handle(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Gin returns gin middleware for validators built for the gin framework.
func Gin(v Validator, opts ...Option) gin.HandlerFunc {
	cfg := newConfig(opts)
	return func(c *gin.Context) {
		if err := v.Validate(c); err != nil {
			if cfg.onError != nil {
				cfg.onError(c.Writer, c.Request, err)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(StatusCode(err), Body(err))
			return
		}
		c.Next()
	}
}

// Echo returns echo middleware for validators built for the echo framework.
// Without an ErrorHandler, failures are returned as *echo.HTTPError so echo's
// own error handler renders them.
func Echo(v Validator, opts ...Option) echo.MiddlewareFunc {
	cfg := newConfig(opts)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := v.Validate(c); err != nil {
				if cfg.onError != nil {
					cfg.onError(c.Response(), c.Request(), err)
					return nil
				}
				return echo.NewHTTPError(StatusCode(err), Body(err)).SetInternal(err)
			}
			return next(c)
		}
	}
}

func (c *config) handle(w http.ResponseWriter, r *http.Request, err error) {
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	DefaultErrorHandler(w, r, err)
}
