package commands

import "github.com/urfave/cli/v3"

const (
	RootUsage       = "Skills, agents and MCP servers for an AI-assisted life"
	RootUsageText   = "aiandi [global options] command [command options]"
	RootDescription = `aiandi bundles OpenCode skills and agents, captures to a TaskWarrior GTD
inbox, and serves MCP tools for session modes, GTD task management, calendars,
contacts and email.

Run 'aiandi init' in a project to install the bundled skills and agents.
Run 'aiandi doctor' to check that the tools aiandi drives are installed.`
)

// GlobalFlags returns the root flags, bound to flags.
func GlobalFlags(flags *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("AIANDI_LOG_LEVEL"),
			Value:       "info",
			Destination: &flags.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to stderr)",
			Sources:     cli.EnvVars("AIANDI_LOG_FILE"),
			Destination: &flags.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("AIANDI_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &flags.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "path to data directory",
			Sources:     cli.EnvVars("AIANDI_DATA_DIR"),
			Value:       DefaultDataDir(),
			Destination: &flags.DataDir,
		},
	}
}

// RegisterAll adds every aiandi subcommand to root.
func RegisterAll(root *cli.Command, flags *Flags, app *App) *cli.Command {
	root = NewInitCmd(flags).Register(root)
	root = NewInboxCmd(flags, app).Register(root)
	root = NewDoctorCmd(flags, app).Register(root)
	root = NewServeCmd(flags, app).Register(root)
	root = NewModeCmd(app).Register(root)
	root = NewPimCmd(flags, app).Register(root)
	root = NewGtdCmd(flags, app).Register(root)
	root = NewSkillsCmd().Register(root)
	root = NewAgentsCmd().Register(root)
	root = NewConfigValidateCmd(flags).Register(root)
	return root
}
