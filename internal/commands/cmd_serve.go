package commands

import (
	"context"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"github.com/pentaxis93/spandaworks/internal/core/doctor"
	"github.com/pentaxis93/spandaworks/internal/core/inbox"
	"github.com/pentaxis93/spandaworks/internal/core/logging"
	"github.com/pentaxis93/spandaworks/internal/mcpserver"
	"github.com/pentaxis93/spandaworks/internal/mcpserver/aiandiserver"
)

// stdio is the transport shared by the MCP server commands.
type stdio struct {
	in  io.Reader
	out io.Writer
}

func defaultStdio() stdio {
	return stdio{in: os.Stdin, out: os.Stdout}
}

func (s stdio) serve(ctx context.Context, component string, srv *server.MCPServer) error {
	return mcpserver.Serve(ctx, srv, s.in, s.out, logging.Component(component))
}

type ServeCmd struct {
	flags *Flags
	app   *App
	io    stdio
}

// NewServeCmd creates the command serving the aiandi tools over MCP.
func NewServeCmd(flags *Flags, app *App) *ServeCmd {
	return &ServeCmd{flags: flags, app: app, io: defaultStdio()}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve aiandi_init, aiandi_inbox and aiandi_doctor over MCP (stdio)",
		UsageText: "aiandi serve",
		Description: `Starts an MCP server on stdin/stdout for OpenCode and other MCP clients.
Logs go to stderr or --log-file; stdout carries only protocol messages.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg := cmd.flags.Config
	capturer := inbox.NewCapturer(cfg.Inbox, cmd.app.Exec, logging.Component("inbox"))
	checks := func() []doctor.Check {
		return doctor.DefaultChecks(doctor.Options{
			Config:     cfg,
			ConfigPath: cmd.flags.ConfigPath,
			Exec:       cmd.app.Exec,
		})
	}

	srv := aiandiserver.New(baseDir, capturer, checks)
	return cmd.io.serve(ctx, "aiandi-server", srv.MCPServer(cmd.app.Version, logging.Component("aiandiserver")))
}
