// Package pimserver exposes calendar, contacts and email tools over MCP.
package pimserver

import (
	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/internal/core/pim"
	"github.com/pentaxis93/spandaworks/internal/mcpserver"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

const serverName = "aiandi-pim"

const instructions = `Personal information tools backed by khal, khard, notmuch and himalaya.

Calendar listings include every synced calendar; new events go to the
configured personal calendar. send_email only sends when confirm is true;
always show the preview to the user first.`

// Server serves the PIM tools.
type Server struct {
	calendar *pim.Calendar
	contacts *pim.Contacts
	email    *pim.Email
}

// New builds a Server from the PIM configuration.
func New(cfg config.PIMConfig, exec executil.Executor, clock clockwork.Clock) *Server {
	return &Server{
		calendar: pim.NewCalendar(cfg, exec, clock),
		contacts: pim.NewContacts(cfg, exec),
		email:    pim.NewEmail(cfg, exec),
	}
}

// Tools returns the tool definitions paired with their handlers.
func (s *Server) Tools() []mcpserver.Tool {
	return []mcpserver.Tool{
		{Definition: listEventsTool, Handler: s.handleListEvents},
		{Definition: createEventTool, Handler: s.handleCreateEvent},
		{Definition: searchEmailsTool, Handler: s.handleSearchEmails},
		{Definition: readEmailTool, Handler: s.handleReadEmail},
		{Definition: sendEmailTool, Handler: s.handleSendEmail},
		{Definition: findContactTool, Handler: s.handleFindContact},
		{Definition: getContactTool, Handler: s.handleGetContact},
		{Definition: createContactTool, Handler: s.handleCreateContact},
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
