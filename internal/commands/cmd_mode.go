package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/pentaxis93/spandaworks/internal/core/logging"
	"github.com/pentaxis93/spandaworks/internal/core/modal"
	"github.com/pentaxis93/spandaworks/internal/mcpserver/modeserver"
)

type ModeCmd struct {
	app *App
	io  stdio
}

// NewModeCmd creates the command serving the modal state tracker over MCP.
func NewModeCmd(app *App) *ModeCmd {
	return &ModeCmd{app: app, io: defaultStdio()}
}

// Register adds the mode command to the application.
func (cmd *ModeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mode",
		Usage:     "Serve the modal state tracker over MCP (stdio)",
		UsageText: "aiandi mode",
		Description: `Tracks the session mode (default, ops, ceremonial), the active context and
the attention stack. State lives in memory and is gone when the server exits.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *ModeCmd) run(ctx context.Context, _ *cli.Command) error {
	tracker := modal.NewTracker(cmd.app.Clock)
	srv := modeserver.New(tracker)
	return cmd.io.serve(ctx, "mode-server", srv.MCPServer(cmd.app.Version, logging.Component("modeserver")))
}
