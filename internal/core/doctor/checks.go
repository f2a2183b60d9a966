package doctor

import (
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
	"github.com/pentaxis93/spandaworks/pkg/workpool"
)

// Options selects the inputs for the standard check set.
type Options struct {
	Config     *config.Config
	ConfigPath string
	Exec       executil.Executor
	Autofix    bool
}

// DefaultChecks returns the checks `aiandi doctor` runs: configured tools,
// the config directory and file, the OpenCode skill directory, and the
// config contents.
func DefaultChecks(opts Options) []Check {
	cfg := opts.Config

	paths := []PathSpec{
		{Label: "Config directory", Path: filepath.Dir(opts.ConfigPath), Kind: KindDir},
		{Label: "Config file", Path: opts.ConfigPath, Kind: KindFile, Content: defaultConfigYAML()},
		{Label: "OpenCode skills directory", Path: cfg.OpenCode.SkillDir, Kind: KindDir},
	}

	return []Check{
		NewCommandCheck(
			ToolsFrom(cfg.Doctor.RequiredTools, cfg.Doctor.OptionalTools),
			opts.Exec,
			workpool.New(cfg.Doctor.Workers),
		),
		NewPathCheck(paths, opts.Autofix),
		NewConfigCheck(opts.ConfigPath, cfg.DataDir),
	}
}

func defaultConfigYAML() []byte {
	out, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return nil
	}
	return out
}
