package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/rs/zerolog"
)

// ServerName and ServerVersion identify the server to MCP clients.
const (
	ServerName    = "discograph-mcp"
	ServerVersion = "1.0.0"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	loader source.Loader
	mcp    *server.MCPServer
	logger zerolog.Logger
}

// Option configures an MCPServer.
type Option func(*MCPServer)

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *MCPServer) {
		s.logger = logger
	}
}

// NewMCPServer creates a server exposing the discography tools over loader.
func NewMCPServer(loader source.Loader, opts ...Option) *MCPServer {
	s := &MCPServer{
		loader: loader,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)
	AddDiscographyTools(s.mcp, loader)
	return s
}

// Server returns the underlying mcp-go server.
func (s *MCPServer) Server() *server.MCPServer {
	return s.mcp
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Msg("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		s.logger.Info().Msg("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
