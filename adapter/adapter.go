package adapter

import (
	"strings"

	"github.com/erraggy/oasguard/oaserrors"
)

// Framework names a supported host framework.
type Framework string

// Supported frameworks.
const (
	NetHTTP Framework = "nethttp"
	Chi     Framework = "chi"
	Gorilla Framework = "gorilla"
	Gin     Framework = "gin"
	Echo    Framework = "echo"
)

// DefaultMaxBodySize is the default request body limit (10 MiB).
const DefaultMaxBodySize int64 = 10 << 20

var frameworks = []Framework{NetHTTP, Chi, Gorilla, Gin, Echo}

// Frameworks returns the supported frameworks, default first.
func Frameworks() []Framework {
	return append([]Framework(nil), frameworks...)
}

// ParseFramework returns the framework with the given case-insensitive name.
// Unknown and empty names select NetHTTP.
func ParseFramework(name string) Framework {
	f := Framework(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range frameworks {
		if f == known {
			return f
		}
	}
	return NetHTTP
}

// Adapter translates a framework-native request into a Descriptor.
type Adapter interface {
	// Framework reports which framework the adapter serves.
	Framework() Framework
	// Extract builds the descriptor for native, which must be the request type
	// of the framework (see New).
	Extract(native any) (*Descriptor, error)
}

// Config holds settings shared by all adapters.
type Config struct {
	// Templates are the canonical route templates known to the validator.
	// The net/http adapter matches against them when a request carries no
	// ServeMux pattern.
	Templates []string
	// MaxBodySize limits how much of the body is read (0 means DefaultMaxBodySize)
	MaxBodySize int64
}

// New returns the adapter for framework. Unknown frameworks fall back to NetHTTP.
//
// Native request types: *http.Request for NetHTTP, Chi and Gorilla;
// *gin.Context for Gin; echo.Context for Echo.
func New(framework Framework, cfg Config) (Adapter, error) {
	if cfg.MaxBodySize < 0 {
		return nil, &oaserrors.ConfigError{Option: "MaxBodySize", Value: cfg.MaxBodySize, Message: "must not be negative"}
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	matcher, err := newRouteMatcher(cfg.Templates)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "Templates", Message: "building route matcher", Cause: err}
	}
	base := extractor{maxBodySize: cfg.MaxBodySize, matcher: matcher}

	switch ParseFramework(string(framework)) {
	case Chi:
		return &chiAdapter{base}, nil
	case Gorilla:
		return &gorillaAdapter{base}, nil
	case Gin:
		return &ginAdapter{base}, nil
	case Echo:
		return &echoAdapter{base}, nil
	default:
		return &netHTTPAdapter{base}, nil
	}
}

func wrongType(framework Framework, want string, got any) error {
	return &oaserrors.UsageError{
		Operation: "adapter." + string(framework) + ".Extract",
		Message:   "expected " + want + ", got " + typeName(got),
	}
}
