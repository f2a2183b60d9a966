package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/pentaxis93/spandaworks/internal/core/logging"
	"github.com/pentaxis93/spandaworks/internal/mcpserver/pimserver"
)

type PimCmd struct {
	flags *Flags
	app   *App
	io    stdio
}

// NewPimCmd creates the command serving the calendar, contacts and email
// tools over MCP.
func NewPimCmd(flags *Flags, app *App) *PimCmd {
	return &PimCmd{flags: flags, app: app, io: defaultStdio()}
}

// Register adds the pim command to the application.
func (cmd *PimCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pim",
		Usage:     "Serve calendar, contacts and email tools over MCP (stdio)",
		UsageText: "aiandi pim",
		Description: `Wraps khal, khard, notmuch and himalaya. Tool paths, the calendar new events
are written to, and the address book directory come from the pim config section.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *PimCmd) run(ctx context.Context, _ *cli.Command) error {
	srv := pimserver.New(cmd.flags.Config.PIM, cmd.app.Exec, cmd.app.Clock)
	return cmd.io.serve(ctx, "pim-server", srv.MCPServer(cmd.app.Version, logging.Component("pimserver")))
}
