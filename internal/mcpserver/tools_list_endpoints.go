package mcpserver

import (
	"context"
	"fmt"
	"path"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/schemaset"
)

type listEndpointsInput struct {
	Spec     specInput `json:"spec"               jsonschema:"The OpenAPI document to list"`
	Template string    `json:"template,omitempty" jsonschema:"Filter by route template; * matches one segment"`
	Method   string    `json:"method,omitempty"   jsonschema:"Filter by HTTP method"`
	Offset   int       `json:"offset,omitempty"   jsonschema:"Skip the first N endpoints (for pagination)"`
	Limit    int       `json:"limit,omitempty"    jsonschema:"Maximum number of endpoints to return"`
}

type listEndpointsOutput struct {
	Total     int                      `json:"total"`
	Matched   int                      `json:"matched"`
	Returned  int                      `json:"returned"`
	Endpoints []schemaset.EndpointInfo `json:"endpoints,omitempty"`
}

func (s *server) handleListEndpoints(_ context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	if _, err := path.Match(input.Template, ""); err != nil {
		return errResult(fmt.Errorf("invalid template pattern %q: %w", input.Template, err)), listEndpointsOutput{}, nil
	}

	spec, err := s.resolve(input.Spec)
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	method := httputil.NormalizeMethod(input.Method)
	all := spec.set.Endpoints()
	var matched []schemaset.EndpointInfo
	for _, ep := range all {
		if method != "" && ep.Method != method {
			continue
		}
		if !matchTemplate(input.Template, ep.Template) {
			continue
		}
		matched = append(matched, ep)
	}

	page := paginate(matched, input.Offset, input.Limit, s.cfg.MCP)
	return nil, listEndpointsOutput{
		Total:     len(all),
		Matched:   len(matched),
		Returned:  len(page),
		Endpoints: page,
	}, nil
}
