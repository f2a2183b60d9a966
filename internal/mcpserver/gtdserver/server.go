// Package gtdserver exposes the TaskWarrior GTD tools over MCP.
package gtdserver

import (
	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/internal/core/gtd"
	"github.com/pentaxis93/spandaworks/internal/mcpserver"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

const serverName = "aiandi-gtd"

const instructions = `Getting Things Done on TaskWarrior.

Tasks are addressed by UUID; list and view tools return them. Start a
session with process_inbox, pick work with get_next_actions, and run
weekly_review once a week. Results are JSON with tasks, metadata and
insights.`

// Server serves the GTD tools.
type Server struct {
	tasks *gtd.Tasks
}

// New builds a Server on the inbox's TaskWarrior binary and tag.
func New(inbox config.InboxConfig, cfg config.GTDConfig, exec executil.Executor, clock clockwork.Clock, log zerolog.Logger) *Server {
	return &Server{tasks: gtd.NewTasks(inbox, cfg, exec, clock, log)}
}

// Tools returns the tool definitions paired with their handlers.
func (s *Server) Tools() []mcpserver.Tool {
	return []mcpserver.Tool{
		{Definition: addTaskTool, Handler: s.handleAddTask},
		{Definition: listTasksTool, Handler: s.handleListTasks},
		{Definition: getTaskDetailsTool, Handler: s.handleGetTaskDetails},
		{Definition: modifyTaskTool, Handler: s.handleModifyTask},
		{Definition: markTaskDoneTool, Handler: s.handleMarkTaskDone},
		{Definition: deleteTaskTool, Handler: s.handleDeleteTask},
		{Definition: startTaskTool, Handler: s.handleStartTask},
		{Definition: stopTaskTool, Handler: s.handleStopTask},
		{Definition: addAnnotationTool, Handler: s.handleAddAnnotation},
		{Definition: removeAnnotationTool, Handler: s.handleRemoveAnnotation},
		{Definition: getNextActionsTool, Handler: s.handleGetNextActions},
		{Definition: processInboxTool, Handler: s.handleProcessInbox},
		{Definition: getWaitingForTool, Handler: s.handleGetWaitingFor},
		{Definition: getSomedayMaybeTool, Handler: s.handleGetSomedayMaybe},
		{Definition: weeklyReviewTool, Handler: s.handleWeeklyReview},
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
