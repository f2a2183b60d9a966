// Package mcpserver holds the plumbing shared by the aiandi MCP servers:
// tool registration with per-call logging and the stdio serve loop.
package mcpserver

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/pentaxis93/spandaworks/internal/core/logging"
)

// Tool pairs a tool definition with its handler.
type Tool struct {
	Definition mcp.Tool
	Handler    server.ToolHandlerFunc
}

// Info describes a server for the MCP handshake.
type Info struct {
	Name         string
	Version      string
	Instructions string
}

// New builds an MCP server exposing tools. Each call is logged with the tool
// name and a generated request id.
func New(info Info, log zerolog.Logger, tools ...Tool) *server.MCPServer {
	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	}
	if info.Instructions != "" {
		opts = append(opts, server.WithInstructions(info.Instructions))
	}

	s := server.NewMCPServer(info.Name, info.Version, opts...)
	for _, t := range tools {
		s.AddTool(t.Definition, Logged(log, t.Definition.Name, t.Handler))
	}
	return s
}

// Logged wraps h so every call is logged with its outcome and duration.
func Logged(log zerolog.Logger, name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = logging.WithTool(ctx, name)
		ctx = logging.WithRequestID(ctx, uuid.NewString())

		start := time.Now()
		res, err := h(ctx, req)

		ev := log.Debug()
		switch {
		case err != nil:
			ev = log.Error().Err(err)
		case res != nil && res.IsError:
			ev = log.Warn()
		}
		ev.Ctx(ctx).
			Dur("elapsed", time.Since(start)).
			Msg("tool call")

		return res, err
	}
}

// Serve speaks MCP over in/out until ctx is cancelled or the input closes.
// A cancelled context is a clean shutdown and returns nil.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, log zerolog.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(logging.StdLogger(log, zerolog.ErrorLevel))

	log.Info().Msg("serving MCP on stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	log.Info().Msg("MCP server stopped")
	return nil
}
