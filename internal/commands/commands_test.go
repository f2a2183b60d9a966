package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v3"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/internal/printer"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

// testEnv is a root command wired the way main wires it, with stdout and
// printer output captured.
type testEnv struct {
	root   *cli.Command
	flags  *Flags
	app    *App
	exec   *executil.RecordingExecutor
	stdout *bytes.Buffer
	status *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	rec := &executil.RecordingExecutor{Outputs: map[string][]byte{}, Errors: map[string]error{}}
	env := &testEnv{
		flags:  &Flags{Config: &cfg, ConfigPath: t.TempDir() + "/config.yaml", DataDir: cfg.DataDir},
		exec:   rec,
		stdout: &bytes.Buffer{},
		status: &bytes.Buffer{},
	}
	env.app = &App{Version: "test", Exec: rec, Clock: clockwork.NewFakeClock()}
	env.root = &cli.Command{
		Name:   "aiandi",
		Writer: env.stdout,
		// Keep cli.Exit from terminating the test binary.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	ctx := printer.NewContext(context.Background(), printer.New(e.status))
	return e.root.Run(ctx, append([]string{"aiandi"}, args...))
}
