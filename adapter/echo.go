package adapter

import (
	"github.com/labstack/echo/v4"
)

type echoAdapter struct {
	extractor
}

func (a *echoAdapter) Framework() Framework { return Echo }

// Extract expects an echo.Context.
func (a *echoAdapter) Extract(native any) (*Descriptor, error) {
	c, ok := native.(echo.Context)
	if !ok || c == nil || c.Request() == nil {
		return nil, wrongType(Echo, "echo.Context", native)
	}

	path := c.Path()
	if path == "" {
		template, params := a.fallback(c.Request())
		return a.fromRequest(c.Request(), template, params)
	}

	names := c.ParamNames()
	values := c.ParamValues()
	params := make(map[string]string, len(names))
	for n, name := range names {
		if name == "*" || n >= len(values) {
			continue
		}
		params[name] = values[n]
	}
	return a.fromRequest(c.Request(), path, params)
}
