// Package mcp wires the Clockodo adapter into an MCP server: it is the
// composition root where the shared client is injected into every tool and
// resource handler. No business logic lives here beyond dispatch.
package mcp

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"clockodo-mcp/internal/ports"
	"clockodo-mcp/internal/usecase"
)

const serverName = "Clockodo Time Tracker"

// Version is set at build time via ldflags.
var Version = "dev"

// Handler holds the long-lived dependencies shared by all tool and resource
// handlers. The client is constructed once at startup and never mutated, so
// concurrent invocations need no locking.
type Handler struct {
	log     *slog.Logger
	client  ports.TimeTracker
	tracker *usecase.Tracker
	resolve *usecase.Resolver
	now     func() time.Time
}

// NewHandler builds the handler set around one authenticated client.
func NewHandler(log *slog.Logger, client ports.TimeTracker) *Handler {
	resolve := &usecase.Resolver{Client: client}
	return &Handler{
		log:     log,
		client:  client,
		resolve: resolve,
		tracker: &usecase.Tracker{Log: log, Client: client, Resolve: resolve},
		now:     time.Now,
	}
}

// New creates the MCP server with all tools and resources registered.
func New(log *slog.Logger, client ports.TimeTracker) *server.MCPServer {
	h := NewHandler(log, client)

	s := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	h.registerTools(s)
	h.registerResources(s)
	return s
}

// ServeStdio runs the server over stdin/stdout until ctx is canceled.
// Stdout carries the protocol; all logging must go to stderr.
func ServeStdio(ctx context.Context, s *server.MCPServer) error {
	return server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
}
