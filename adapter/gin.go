package adapter

import (
	"github.com/gin-gonic/gin"
)

type ginAdapter struct {
	extractor
}

func (a *ginAdapter) Framework() Framework { return Gin }

// Extract expects a *gin.Context.
func (a *ginAdapter) Extract(native any) (*Descriptor, error) {
	c, ok := native.(*gin.Context)
	if !ok || c == nil || c.Request == nil {
		return nil, wrongType(Gin, "*gin.Context", native)
	}

	fullPath := c.FullPath()
	if fullPath == "" {
		template, params := a.fallback(c.Request)
		return a.fromRequest(c.Request, template, params)
	}

	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	return a.fromRequest(c.Request, fullPath, params)
}
