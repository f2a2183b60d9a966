package inbox

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

var testCfg = config.InboxConfig{Command: "task", Tag: "in"}

func stubLookPath(t *testing.T, found bool) {
	t.Helper()
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })

	lookPathFunc = func(file string) (string, error) {
		if !found {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + file, nil
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		cfg  config.InboxConfig
		want []string
	}{
		{
			name: "basic",
			opts: Options{Text: "Buy milk"},
			cfg:  testCfg,
			want: []string{"add", "Buy milk", "+in"},
		},
		{
			name: "tags with and without plus",
			opts: Options{Text: "Call mom", Tags: []string{"phone", "+urgent"}},
			cfg:  testCfg,
			want: []string{"add", "Call mom", "+in", "+phone", "+urgent"},
		},
		{
			name: "project",
			opts: Options{Text: "Review PR", Project: "work"},
			cfg:  testCfg,
			want: []string{"add", "Review PR", "+in", "project:work"},
		},
		{
			name: "default tags come first and blanks are skipped",
			opts: Options{Text: "x", Tags: []string{" ", "later"}},
			cfg:  config.InboxConfig{Command: "task", Tag: "inbox", DefaultTags: []string{"captured"}},
			want: []string{"add", "x", "+inbox", "+captured", "+later"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildArgs(tt.opts, tt.cfg))
		})
	}
}

func TestBuildArgs_DoesNotMutateDefaults(t *testing.T) {
	defaults := make([]string, 1, 4)
	defaults[0] = "a"
	cfg := config.InboxConfig{Tag: "in", DefaultTags: defaults}

	BuildArgs(Options{Text: "x", Tags: []string{"b"}}, cfg)

	assert.Equal(t, []string{"a"}, cfg.DefaultTags)
	assert.Equal(t, "", defaults[:2][1], "default tags backing array must stay untouched")
}

func TestParseTaskID(t *testing.T) {
	assert.Equal(t, 42, ParseTaskID("Created task 42."))
	assert.Equal(t, 123, ParseTaskID("Created task 123.\n"))
	assert.Equal(t, 0, ParseTaskID("No task created"))
	assert.Equal(t, 0, ParseTaskID(""))
}

func TestCapture_RejectsBlankText(t *testing.T) {
	stubLookPath(t, true)
	rec := &executil.RecordingExecutor{}
	c := NewCapturer(testCfg, rec, zerolog.Nop())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := c.Capture(context.Background(), Options{Text: text})
		require.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Empty(t, rec.Commands)
}

func TestCapture_TaskWarriorMissing(t *testing.T) {
	stubLookPath(t, false)
	c := NewCapturer(testCfg, &executil.RecordingExecutor{}, zerolog.Nop())

	_, err := c.Capture(context.Background(), Options{Text: "x"})
	require.ErrorIs(t, err, ErrTaskWarriorMissing)
}

func TestCapture_DryRun(t *testing.T) {
	stubLookPath(t, true)
	rec := &executil.RecordingExecutor{}
	c := NewCapturer(testCfg, rec, zerolog.Nop())

	res, err := c.Capture(context.Background(), Options{Text: "Buy milk", Tags: []string{"errand"}, DryRun: true})
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.Zero(t, res.TaskID)
	assert.Equal(t, `task add "Buy milk" +in +errand`, res.Command)
	assert.Empty(t, rec.Commands)
}

func TestCapture_Runs(t *testing.T) {
	stubLookPath(t, true)
	rec := &executil.RecordingExecutor{Outputs: map[string][]byte{"task": []byte("Created task 7.\n")}}
	c := NewCapturer(testCfg, rec, zerolog.Nop())

	res, err := c.Capture(context.Background(), Options{Text: "  Buy milk  ", Project: "home"})
	require.NoError(t, err)

	assert.Equal(t, 7, res.TaskID)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "task", last.Cmd)
	assert.Equal(t, []string{"add", "Buy milk", "+in", "project:home"}, last.Args)
}

func TestCapture_WrapsFailure(t *testing.T) {
	stubLookPath(t, true)
	cause := errors.New("exec task: bad date")
	rec := &executil.RecordingExecutor{Errors: map[string]error{"task": cause}}
	c := NewCapturer(testCfg, rec, zerolog.Nop())

	_, err := c.Capture(context.Background(), Options{Text: "x"})
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "TaskWarrior failed")
}
