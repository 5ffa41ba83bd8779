package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docpay-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.2.0"

// instructions is sent to clients on initialisation.
const instructions = `docpay turns uploaded documents into payment requests.

Call get_extractions with a document id to wait until the document is
processed and read its payment fields (paymentRecipient, iban, bic,
amountToPay, paymentPurpose). Pick a banking app with
list_payment_providers and pass the fields to create_payment_request.
A request stays open until resolve_payment_request marks it paid.
get_payment returns the settled payment of a resolved request.`

// shutdownTimeout bounds the graceful shutdown of the HTTP transport.
const shutdownTimeout = 5 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithToolTimeout bounds every tool call. Zero leaves calls unbounded,
// so get_extractions waits for as long as the document is pending.
func WithToolTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.toolTimeout = d
	}
}

// WithKeepAlive pings idle sessions at the given interval.
func WithKeepAlive(d time.Duration) Option {
	return func(s *Server) {
		s.keepAlive = d
	}
}

// Server exposes the document manager to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server

	toolTimeout time.Duration
	keepAlive   time.Duration
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:     ports,
		keepAlive: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "docpay",
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
		KeepAlive:    s.keepAlive,
	})

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve runs the server until ctx is done. An empty addr serves over
// stdio, anything else over streamable HTTP on that address.
func (s *Server) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		logger.Debug("mcp: serving over stdio")
		return s.server.Run(ctx, &mcp.StdioTransport{})
	}
	return s.serveHTTP(ctx, addr)
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutting down http server: %v", err)
		}
	}()

	logger.Info("mcp: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		return nil
	}
	return err
}

// bound wraps a tool handler with the server's tool timeout and debug logging.
func bound[In, Out any](s *Server, name string, h mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, Out, error) {
		logger.Debug("mcp: tool %s", name)
		if s.toolTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.toolTimeout)
			defer cancel()
		}

		res, out, err := h(ctx, req, input)
		if err != nil {
			logger.Debug("mcp: tool %s failed: %v", name, err)
		}
		return res, out, err
	}
}

// addTool registers h under tool.Name, bounded by the server's options.
func addTool[In, Out any](s *Server, tool *mcp.Tool, h mcp.ToolHandlerFor[In, Out]) {
	mcp.AddTool(s.server, tool, bound(s, tool.Name, h))
}
