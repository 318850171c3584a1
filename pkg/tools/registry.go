package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/staticsnap/pkg/cache"
	"github.com/NERVsystems/staticsnap/pkg/metrics"
	"github.com/NERVsystems/staticsnap/pkg/snapshot"
)

// Registry holds all MCP tool registrations for the snapshot service.
type Registry struct {
	logger  *slog.Logger
	builder *snapshot.Builder
	cache   *cache.URLCache
	limiter *RateLimiter
}

// Option configures a Registry.
type Option func(*Registry)

// WithBuilder sets the URL builder. The default targets snapshot.DefaultHost.
func WithBuilder(b *snapshot.Builder) Option {
	return func(r *Registry) { r.builder = b }
}

// WithCache sets the URL cache.
func WithCache(c *cache.URLCache) Option {
	return func(r *Registry) { r.cache = c }
}

// WithRateLimiter enables per-tool rate limiting.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(r *Registry) { r.limiter = rl }
}

// NewRegistry creates a new MCP tool registry.
func NewRegistry(logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	if r.builder == nil {
		r.builder = snapshot.NewBuilder(snapshot.DefaultHost, "false", snapshot.WithLogger(logger))
	}
	if r.cache == nil {
		r.cache = cache.NewURLCache(cache.DefaultSize, cache.DefaultTTL)
	}
	return r
}

// ToolDefinition represents a staticsnap MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     server.ToolHandlerFunc
}

// GetToolDefinitions returns all staticsnap MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// Snapshot Tools
		{
			Name:        "build_snapshot_url",
			Description: "Build a static map image URL reproducing a map viewport and its overlays",
			Tool:        BuildSnapshotURLTool(),
			Handler:     r.HandleBuildSnapshotURL,
		},
		{
			Name:        "serialize_map_style",
			Description: "Convert custom map style rules into static map style parameters",
			Tool:        SerializeMapStyleTool(),
			Handler:     r.HandleSerializeMapStyle,
		},

		// Polyline Tools
		{
			Name:        "encode_polyline",
			Description: "Encode a sequence of coordinates as a compact polyline string",
			Tool:        EncodePolylineTool(),
			Handler:     r.HandleEncodePolyline,
		},
		{
			Name:        "decode_polyline",
			Description: "Decode a polyline string back into coordinates",
			Tool:        DecodePolylineTool(),
			Handler:     r.HandleDecodePolyline,
		},

		// Geometry Tools
		{
			Name:        "clip_path",
			Description: "Select the vertices of a path needed to draw its visible part inside a bounding box",
			Tool:        ClipPathTool(),
			Handler:     r.HandleClipPath,
		},
		{
			Name:        "circle_path",
			Description: "Approximate a circle by a closed 37-point ring",
			Tool:        CirclePathTool(),
			Handler:     r.HandleCirclePath,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, r.instrument(def.Name, def.Handler))
	}
}

// instrument wraps a handler with rate limiting and call metrics.
func (r *Registry) instrument(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx, name); err != nil {
				r.logger.Warn("rate limit wait aborted", "tool", name, "error", err)
				metrics.ObserveToolCall(name, true, start)
				return ErrorWithGuidance(NewAPIError("RateLimit", CodeRateLimited, err.Error(), "")), nil
			}
		}

		result, err := handler(ctx, req)
		metrics.ObserveToolCall(name, err != nil || (result != nil && result.IsError), start)
		return result, err
	}
}
