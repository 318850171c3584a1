// Package server provides the MCP server exposing the static map snapshot
// tools.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/staticsnap/pkg/cache"
	"github.com/NERVsystems/staticsnap/pkg/config"
	"github.com/NERVsystems/staticsnap/pkg/metrics"
	"github.com/NERVsystems/staticsnap/pkg/snapshot"
	"github.com/NERVsystems/staticsnap/pkg/tools"
	"github.com/NERVsystems/staticsnap/pkg/version"
)

// ServerName is the name of the MCP server
const ServerName = "staticsnap"

// Server encapsulates the MCP server with the snapshot tools.
type Server struct {
	srv      *server.MCPServer
	registry *tools.Registry
	logger   *slog.Logger
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("initializing static map snapshot MCP server",
		"name", ServerName,
		"version", version.Version,
		"maps_host", cfg.Maps.Host)

	// Create MCP server with options
	srv := server.NewMCPServer(
		ServerName,
		version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	builder := snapshot.NewBuilder(cfg.Maps.Host, cfg.Maps.Sensor, snapshot.WithLogger(logger))
	registry := tools.NewRegistry(logger,
		tools.WithBuilder(builder),
		tools.WithCache(cache.NewURLCache(cfg.Cache.Size, cfg.Cache.TTL)),
		tools.WithRateLimiter(tools.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)),
	)
	registry.RegisterTools(srv)

	return &Server{srv: srv, registry: registry, logger: logger}, nil
}

// Tools returns the names of the registered tools.
func (s *Server) Tools() []string {
	defs := s.registry.GetToolDefinitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

// Run serves MCP over stdin/stdout until ctx is canceled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves MCP over the given streams.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.srv)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// NewMetricsServer returns an HTTP server exposing Prometheus metrics on
// /metrics. The caller starts and stops it.
func NewMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
