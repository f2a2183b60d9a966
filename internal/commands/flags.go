package commands

import (
	"github.com/jonboulle/clockwork"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// App holds the dependencies built once in the root Before hook.
type App struct {
	Version string
	Exec    executil.Executor
	Clock   clockwork.Clock
}

// DefaultConfigPath returns the default config file path under XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return config.DefaultPath()
}

// DefaultDataDir returns the default data directory under XDG_DATA_HOME.
func DefaultDataDir() string {
	return config.DefaultDataDir()
}
