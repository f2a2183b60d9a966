package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/pentaxis93/spandaworks/internal/assets"
	"github.com/pentaxis93/spandaworks/internal/core/styles"
	"github.com/pentaxis93/spandaworks/pkg/iojson"
)

// AssetsCmd lists and shows one kind of bundled asset.
type AssetsCmd struct {
	kind   assets.Kind
	bundle *assets.Bundle

	format string
	raw    bool

	isTerminal func() bool
}

// NewSkillsCmd creates the skills command.
func NewSkillsCmd() *AssetsCmd {
	return newAssetsCmd(assets.KindSkill)
}

// NewAgentsCmd creates the agents command.
func NewAgentsCmd() *AssetsCmd {
	return newAssetsCmd(assets.KindAgent)
}

func newAssetsCmd(kind assets.Kind) *AssetsCmd {
	return &AssetsCmd{
		kind:   kind,
		bundle: assets.Default(),
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// Register adds the command and its list/show subcommands to the application.
func (cmd *AssetsCmd) Register(app *cli.Command) *cli.Command {
	kind := cmd.kind.String()

	app.Commands = append(app.Commands, &cli.Command{
		Name:  kind + "s",
		Usage: fmt.Sprintf("Inspect the bundled %ss", kind),
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     fmt.Sprintf("List bundled %ss", kind),
				UsageText: fmt.Sprintf("aiandi %ss list [options]", kind),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "show",
				Usage:     fmt.Sprintf("Show a bundled %s", kind),
				UsageText: fmt.Sprintf("aiandi %ss show [options] <name>", kind),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "raw",
						Usage:       "print the file as is, front matter included",
						Destination: &cmd.raw,
					},
				},
				ShellComplete: AssetNameCompleter(cmd.bundle, cmd.kind),
				Action:        cmd.runShow,
			},
		},
	})
	return app
}

type assetJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Model       string `json:"model,omitempty"`
}

func (cmd *AssetsCmd) runList(ctx context.Context, c *cli.Command) error {
	all := cmd.bundle.All(cmd.kind)
	w := c.Root().Writer

	if cmd.format == "json" {
		out := make([]assetJSON, 0, len(all))
		for _, a := range all {
			out = append(out, assetJSON{Name: a.Name, Description: a.Meta.Description, Model: a.Meta.Model})
		}
		return iojson.WriteWith(w, os.Stderr, out)
	}

	width := 0
	for _, a := range all {
		width = max(width, len(a.Name))
	}
	for _, a := range all {
		_, _ = fmt.Fprintf(w, "%s  %s\n",
			styles.TextPrimaryBoldStyle.Render(fmt.Sprintf("%-*s", width, a.Name)),
			styles.TextMutedStyle.Render(a.Meta.Description),
		)
	}
	return nil
}

func (cmd *AssetsCmd) runShow(ctx context.Context, c *cli.Command) error {
	name := strings.TrimSpace(c.Args().First())
	if name == "" {
		return fmt.Errorf("%s name required (one of: %s)", cmd.kind, strings.Join(cmd.bundle.Names(cmd.kind), ", "))
	}

	a, ok := cmd.bundle.Get(cmd.kind, name)
	if !ok {
		return &assets.UnknownError{Kind: cmd.kind, Name: name, Available: cmd.bundle.Names(cmd.kind)}
	}

	w := c.Root().Writer
	if cmd.raw || !cmd.isTerminal() {
		_, err := w.Write(a.Content)
		return err
	}

	_, err := fmt.Fprint(w, renderMarkdown(a.Body))
	return err
}

// renderMarkdown renders md for the terminal, falling back to the source.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return md
	}
	return out
}
