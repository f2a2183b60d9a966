// Package modeserver exposes a modal.Tracker as an MCP tool server.
//
// Validation problems (unknown modes, duplicate ids, missing items) are
// reported as informational text so the calling agent can correct itself.
// Only missing required arguments produce MCP error results.
package modeserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/pentaxis93/spandaworks/internal/core/modal"
	"github.com/pentaxis93/spandaworks/internal/mcpserver"
)

const serverName = "aiandi-mode"

const instructions = `Tracks the working memory of this session.

Use enter_mode/exit_mode when the conversation changes register (ops for life
logistics, ceremonial for the /open ritual, default for coding). Keep the
attention stack current: add items as they surface, mark them hot while being
worked, handled when resolved. mode_status gives a one-call overview.`

// Server serves the mode tools over one shared tracker.
type Server struct {
	tracker *modal.Tracker
}

// New returns a Server backed by tracker.
func New(tracker *modal.Tracker) *Server {
	return &Server{tracker: tracker}
}

// Tools returns the tool definitions paired with their handlers.
func (s *Server) Tools() []mcpserver.Tool {
	return []mcpserver.Tool{
		{Definition: modeStatusTool, Handler: s.handleModeStatus},
		{Definition: enterModeTool, Handler: s.handleEnterMode},
		{Definition: exitModeTool, Handler: s.handleExitMode},
		{Definition: setContextTool, Handler: s.handleSetContext},
		{Definition: getContextTool, Handler: s.handleGetContext},
		{Definition: addAttentionTool, Handler: s.handleAddAttention},
		{Definition: updateAttentionTool, Handler: s.handleUpdateAttention},
		{Definition: listAttentionTool, Handler: s.handleListAttention},
		{Definition: modeHistoryTool, Handler: s.handleModeHistory},
	}
}

// MCPServer builds the MCP server for the tools.
func (s *Server) MCPServer(version string, log zerolog.Logger) *server.MCPServer {
	return mcpserver.New(mcpserver.Info{
		Name:         serverName,
		Version:      version,
		Instructions: instructions,
	}, log, s.Tools()...)
}
