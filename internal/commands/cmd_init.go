package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/pentaxis93/spandaworks/internal/assets"
	"github.com/pentaxis93/spandaworks/internal/core/styles"
	"github.com/pentaxis93/spandaworks/internal/printer"
)

type InitCmd struct {
	flags *Flags

	dir      string
	skills   []string
	agents   []string
	noSkills bool
	noAgents bool
	force    bool
	dryRun   bool
	yes      bool

	isTerminal func() bool
	confirm    func(title, description string) (bool, error)
}

// NewInitCmd creates a new init command.
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{
		flags: flags,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		confirm: confirmOverwrite,
	}
}

// Register adds the init command to the application.
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Install bundled skills and agents into .opencode/",
		UsageText: "aiandi init [options]",
		Description: `Creates .opencode/ in the target directory and extracts the bundled skills
into .opencode/skill/<name>/SKILL.md and agents into .opencode/agent/<name>.md.

Existing files are kept unless --force is given. On a terminal you are asked
before anything is overwritten.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "directory to initialize",
				Value:       ".",
				Destination: &cmd.dir,
			},
			&cli.StringSliceFlag{
				Name:        "skills",
				Usage:       "skills to install (names or glob patterns; default all)",
				Destination: &cmd.skills,
			},
			&cli.StringSliceFlag{
				Name:        "agents",
				Usage:       "agents to install (names or glob patterns; default all)",
				Destination: &cmd.agents,
			},
			&cli.BoolFlag{
				Name:        "no-skills",
				Usage:       "do not install skills",
				Destination: &cmd.noSkills,
			},
			&cli.BoolFlag{
				Name:        "no-agents",
				Usage:       "do not install agents",
				Destination: &cmd.noAgents,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing skill and agent files",
				Destination: &cmd.force,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "show what would be created without writing",
				Destination: &cmd.dryRun,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "never prompt; keep existing files unless --force",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	opts := assets.InstallOptions{
		Skills:   nilIfEmpty(cmd.skills),
		Agents:   nilIfEmpty(cmd.agents),
		NoSkills: cmd.noSkills,
		NoAgents: cmd.noAgents,
		Force:    cmd.force,
		DryRun:   cmd.dryRun,
	}

	if !cmd.force && !cmd.dryRun && !cmd.yes && cmd.isTerminal() {
		overwrite, err := cmd.askOverwrite(opts)
		if err != nil {
			return err
		}
		if overwrite {
			opts.Force = true
		}
	}

	res, err := assets.Install(cmd.dir, opts)
	if err != nil {
		return err
	}

	cmd.report(p, res, opts)
	return nil
}

// askOverwrite plans the install and, when asset files already exist, asks
// whether to overwrite them.
func (cmd *InitCmd) askOverwrite(opts assets.InstallOptions) (bool, error) {
	opts.DryRun = true
	plan, err := assets.Install(cmd.dir, opts)
	if err != nil {
		return false, err
	}

	existing := append(append([]string{}, plan.SkillsSkipped...), plan.AgentsSkipped...)
	if len(existing) == 0 {
		return false, nil
	}

	abs, _ := filepath.Abs(filepath.Join(cmd.dir, assets.OpenCodeDir))
	ok, err := cmd.confirm(
		fmt.Sprintf("%d file(s) already exist", len(existing)),
		abs+"\n"+strings.Join(existing, ", ")+"\nOverwrite with the bundled versions?",
	)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func confirmOverwrite(title, description string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Value(&overwrite),
	)).WithTheme(styles.FormTheme()).Run()
	return overwrite, err
}

func (cmd *InitCmd) report(p *printer.Printer, res assets.InstallResult, opts assets.InstallOptions) {
	for _, a := range res.Actions {
		target := a.Path
		if a.Asset != "" {
			target = a.Asset
		}

		switch {
		case res.DryRun && a.Kind != assets.ActionSkip:
			p.Infof("[dry-run] Would %s %s", a.Kind, a.Path)
		case a.Kind == assets.ActionSkip && a.Asset != "":
			p.Warnf("Skipped %s (already exists, use --force to overwrite)", target)
		case a.Kind == assets.ActionSkip:
			p.Printf("  %s already exists", a.Path)
		case a.Kind == assets.ActionOverwrite:
			p.Successf("Overwrote %s", a.Path)
		default:
			p.Successf("Created %s", a.Path)
		}
	}

	p.Printf("")
	if res.DryRun {
		p.Infof("Dry run complete. No files created.")
		return
	}

	var parts []string
	if !opts.NoSkills {
		parts = append(parts, countPhrase(len(res.SkillsInstalled), len(res.SkillsSkipped), "skill"))
	}
	if !opts.NoAgents {
		parts = append(parts, countPhrase(len(res.AgentsInstalled), len(res.AgentsSkipped), "agent"))
	}

	msg := "aiandi initialized."
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, ", ") + "."
	}
	p.Successf("%s", msg)
}

func countPhrase(installed, skipped int, noun string) string {
	s := fmt.Sprintf("%d %s", installed, noun)
	if installed != 1 {
		s += "s"
	}
	s += " installed"
	if skipped > 0 {
		s += fmt.Sprintf(" (%d skipped)", skipped)
	}
	return s
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
