package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/pentaxis93/spandaworks/internal/core/inbox"
	"github.com/pentaxis93/spandaworks/internal/core/logging"
	"github.com/pentaxis93/spandaworks/internal/printer"
)

type InboxCmd struct {
	flags *Flags
	app   *App

	tags    []string
	project string
	dryRun  bool

	stdin      io.Reader
	isTerminal func() bool
}

// NewInboxCmd creates a new inbox command.
func NewInboxCmd(flags *Flags, app *App) *InboxCmd {
	return &InboxCmd{
		flags: flags,
		app:   app,
		stdin: os.Stdin,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Register adds the inbox command to the application.
func (cmd *InboxCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "inbox",
		Usage:     "Capture a thought to the GTD inbox",
		UsageText: "aiandi inbox [options] <text...>",
		Description: `Adds a TaskWarrior task tagged with the inbox tag for later processing.

With no text arguments and piped input, the text is read from stdin:

  echo "call the plumber" | aiandi inbox -t phone`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "additional tag (repeatable)",
				Destination: &cmd.tags,
			},
			&cli.StringFlag{
				Name:        "project",
				Aliases:     []string{"p"},
				Usage:       "assign to project",
				Destination: &cmd.project,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "show the task command without running it",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InboxCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	text, err := cmd.text(c.Args().Slice())
	if err != nil {
		return err
	}

	capturer := inbox.NewCapturer(cmd.flags.Config.Inbox, cmd.app.Exec, logging.Component("inbox"))
	res, err := capturer.Capture(ctx, inbox.Options{
		Text:    text,
		Tags:    cmd.tags,
		Project: cmd.project,
		DryRun:  cmd.dryRun,
	})
	if err != nil {
		return err
	}

	switch {
	case res.DryRun:
		p.Infof("[dry-run] Would run: %s", res.Command)
	case res.TaskID > 0:
		p.Successf("Captured to inbox: task %d", res.TaskID)
	default:
		p.Successf("Captured to inbox")
	}
	return nil
}

// text joins the arguments, falling back to piped stdin when there are none.
func (cmd *InboxCmd) text(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if cmd.isTerminal() {
		return "", fmt.Errorf("nothing to capture: pass text as arguments or pipe it on stdin")
	}

	data, err := io.ReadAll(cmd.stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
