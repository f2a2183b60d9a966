package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/pentaxis93/spandaworks/internal/core/logging"
	"github.com/pentaxis93/spandaworks/internal/mcpserver/gtdserver"
)

type GtdCmd struct {
	flags *Flags
	app   *App
	io    stdio
}

// NewGtdCmd creates the command serving the TaskWarrior GTD tools over MCP.
func NewGtdCmd(flags *Flags, app *App) *GtdCmd {
	return &GtdCmd{flags: flags, app: app, io: defaultStdio()}
}

// Register adds the gtd command to the application.
func (cmd *GtdCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "gtd",
		Usage:     "Serve TaskWarrior GTD tools over MCP (stdio)",
		UsageText: "aiandi gtd",
		Description: `Task management, next actions, inbox processing, waiting-for, someday/maybe
and the weekly review. Uses the TaskWarrior binary and inbox tag from the inbox
config section and the someday tag and stale project threshold from gtd.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *GtdCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	srv := gtdserver.New(cfg.Inbox, cfg.GTD, cmd.app.Exec, cmd.app.Clock, logging.Component("gtd"))
	return cmd.io.serve(ctx, "gtd-server", srv.MCPServer(cmd.app.Version, logging.Component("gtdserver")))
}
