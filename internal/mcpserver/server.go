// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasguard request validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/internal/config"
)

const serverInstructions = `oasguard MCP server: validates HTTP requests against OpenAPI 2.0 and 3.x documents.

Tools:
- validate_request: check one request (method, path, headers, query, path params, body) against a document and get the failing fields.
- list_endpoints: list the route templates and methods a document declares, and which of them validate parameters or a body.

Paths may be route templates (/pets/{petId}) or concrete paths (/pets/42); concrete paths are matched against the document's templates.

Configuration: defaults come from OASGUARD_* environment variables set in your MCP client config, e.g.
- OASGUARD_VALIDATOR_BEAUTIFY_ERRORS (default: false)
- OASGUARD_VALIDATOR_FIRST_ERROR (default: false)
- OASGUARD_MCP_CACHE_ENABLED (default: true)
- OASGUARD_MCP_CACHE_TTL (default: 15m)
- OASGUARD_MCP_LIST_LIMIT (default: 100)

Caching: compiled documents are cached per session. File entries are keyed by path+mtime, inline content by its hash.`

// server holds the per-process state shared by every tool call.
type server struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *specCacheStore
}

func newServer(cfg *config.Config, logger *slog.Logger) *server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &server{
		cfg:    cfg,
		logger: logger,
		cache:  newSpecCache(cfg.MCP.CacheMaxSize),
	}
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	s := newServer(cfg, logger)
	if cfg.MCP.CacheEnabled {
		s.cache.startSweeper(ctx, cfg.MCP.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasguard", Version: oasguard.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	s.registerTools(server)
	s.logger.Info("mcp server starting", "version", oasguard.Version())
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_request",
		Description: "Validate an HTTP request against an OpenAPI document. Provide the document (file or content) and the request: method, path (route template or concrete path), and optionally headers, query, path_params, files and body. Returns valid=true, or the failing fields with their location (query, headers, path, files, body), JSON pointer, message and schema keyword. Requests whose route or method the document does not declare are reported with matched=false and pass. Use first_error to stop at the first failure and beautify for human-readable messages.",
	}, s.handleValidateRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the endpoints an OpenAPI document declares: route template, method, operationId, and whether parameters or a request body are validated. Filter by template (supports * for one segment, e.g. /pets/*) or method. Use offset/limit to paginate. Default limit is configurable via OASGUARD_MCP_LIST_LIMIT.",
	}, s.handleListEndpoints)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to lim.ListLimit.
func paginate[T any](items []T, offset, limit int, lim config.MCPConfig) []T {
	if limit <= 0 {
		limit = lim.ListLimit
	}
	if limit > lim.MaxLimit {
		limit = lim.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// matchTemplate reports whether template matches pattern. Patterns without
// glob characters must match exactly.
func matchTemplate(pattern, template string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == template
	}
	ok, err := path.Match(pattern, template)
	return err == nil && ok
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
