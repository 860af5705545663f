// Package mcp implements a Model Context Protocol (MCP) server that exposes
// the user registry as the create-user tool and the company policy document as
// a text resource.
//
// Protocol handling is delegated to github.com/mark3labs/mcp-go. The server
// speaks newline-delimited JSON-RPC 2.0 over stdio, or MCP streamable HTTP
// when mounted with Router.
//
// # Usage with Claude Desktop
//
// Add to your claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "policymcp": {
//	      "command": "policymcp",
//	      "args": ["-config", "/etc/policymcp/policymcp.hcl"]
//	    }
//	  }
//	}
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lvillar/policymcp/internal/logger"
	"github.com/lvillar/policymcp/internal/metrics"
	"github.com/lvillar/policymcp/registry"
)

// UserAppender stores a new user and returns the assigned id.
type UserAppender interface {
	Append(ctx context.Context, u registry.NewUser) (int, error)
}

// DocumentReader returns the full text of a document.
type DocumentReader interface {
	Read(ctx context.Context) (string, error)
}

// Server is an MCP server bound to one user registry and one policy document.
type Server struct {
	mcp     *server.MCPServer
	users   UserAppender
	policy  DocumentReader
	log     *logger.Logger
	metrics *metrics.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and transport logs.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics sets the metrics the handlers report to.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates a server announcing itself as name/version with the
// create-user tool and the company policy resource registered.
func NewServer(name, version string, users UserAppender, policy DocumentReader, opts ...Option) *Server {
	s := &Server{
		users:  users,
		policy: policy,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}

	s.mcp = server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	s.mcp.AddTool(createUserTool(), s.handleCreateUser)
	s.mcp.AddResource(policyResource(), s.handlePolicy)

	return s
}

// HandleMessage processes a single JSON-RPC message and returns the response,
// or nil for notifications.
func (s *Server) HandleMessage(ctx context.Context, msg json.RawMessage) mcpgo.JSONRPCMessage {
	return s.mcp.HandleMessage(ctx, msg)
}

// ServeStdio reads requests from in and writes responses to out until in is
// exhausted or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(s.log.With("component", "stdio").Zerolog(), "", 0))
	return stdio.Listen(ctx, in, out)
}
