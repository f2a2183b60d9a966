// Package aiandiserver exposes the aiandi commands themselves as MCP tools so
// an agent can initialize a project, capture to the inbox and check health.
package aiandiserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/pentaxis93/spandaworks/internal/assets"
	"github.com/pentaxis93/spandaworks/internal/core/doctor"
	"github.com/pentaxis93/spandaworks/internal/core/inbox"
	"github.com/pentaxis93/spandaworks/internal/mcpserver"
)

const serverName = "aiandi"

// Capturer adds items to the GTD inbox.
type Capturer interface {
	Capture(ctx context.Context, opts inbox.Options) (inbox.Result, error)
}

// Server serves the aiandi tools.
type Server struct {
	baseDir string
	inbox   Capturer
	checks  func() []doctor.Check
}

// New returns a Server. Init installs into baseDir; doctor runs the checks
// returned by checks on every call.
func New(baseDir string, capturer Capturer, checks func() []doctor.Check) *Server {
	return &Server{baseDir: baseDir, inbox: capturer, checks: checks}
}

var (
	initTool = mcp.NewTool("aiandi_init",
		mcp.WithDescription("Initialize aiandi in the working directory by extracting bundled skills and agents into .opencode/."),
		mcp.WithString("skills",
			mcp.Description("Skills to install (comma-separated names or glob patterns). Defaults to all."),
		),
		mcp.WithString("agents",
			mcp.Description("Agents to install (comma-separated names or glob patterns). Defaults to all."),
		),
		mcp.WithBoolean("force",
			mcp.Description("Overwrite existing skill and agent files"),
		),
	)

	inboxTool = mcp.NewTool("aiandi_inbox",
		mcp.WithDescription("Capture text to the GTD inbox via TaskWarrior. Adds a task with the inbox tag for later processing."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to capture")),
		mcp.WithString("tags", mcp.Description("Additional tags (comma-separated)")),
		mcp.WithString("project", mcp.Description("Project to assign")),
	)

	doctorTool = mcp.NewTool("aiandi_doctor",
		mcp.WithDescription("Run health checks on OpenCode, TaskWarrior, the PIM tools, config and skill directories."),
	)
)

// Tools returns the tool definitions paired with their handlers.
func (s *Server) Tools() []mcpserver.Tool {
	return []mcpserver.Tool{
		{Definition: initTool, Handler: s.handleInit},
		{Definition: inboxTool, Handler: s.handleInbox},
		{Definition: doctorTool, Handler: s.handleDoctor},
	}
}

// MCPServer builds the MCP server for the tools.
func (s *Server) MCPServer(version string, log zerolog.Logger) *server.MCPServer {
	return mcpserver.New(mcpserver.Info{Name: serverName, Version: version}, log, s.Tools()...)
}

func (s *Server) handleInit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := assets.Install(s.baseDir, assets.InstallOptions{
		Skills: splitList(req.GetString("skills", "")),
		Agents: splitList(req.GetString("agents", "")),
		Force:  req.GetBool("force", false),
	})
	if err != nil {
		return mcp.NewToolResultError("Initialization failed: " + err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("aiandi initialized in " + assets.OpenCodeDir + "/\n")
	writeNames(&b, "Skills installed", res.SkillsInstalled)
	writeNames(&b, "Skills skipped (exist, use force)", res.SkillsSkipped)
	writeNames(&b, "Agents installed", res.AgentsInstalled)
	writeNames(&b, "Agents skipped (exist, use force)", res.AgentsSkipped)
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

func (s *Server) handleInbox(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.inbox.Capture(ctx, inbox.Options{
		Text:    text,
		Tags:    splitList(req.GetString("tags", "")),
		Project: req.GetString("project", ""),
	})
	if err != nil {
		return mcp.NewToolResultError("Capture failed: " + err.Error()), nil
	}

	if res.TaskID > 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Captured to inbox: task %d", res.TaskID)), nil
	}
	return mcp.NewToolResultText("Captured to inbox"), nil
}

func (s *Server) handleDoctor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results := doctor.RunAll(ctx, s.checks())
	return mcp.NewToolResultText(doctor.FormatText(results)), nil
}

// splitList splits a comma separated argument. Blank input yields nil.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeNames(b *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(names, ", "))
}
