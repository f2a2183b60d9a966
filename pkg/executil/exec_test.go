package executil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_StderrCappedAtMaxLen(t *testing.T) {
	ctx := context.Background()
	e := &RealExecutor{}

	// Write twice the cap to stderr; only the first maxStderrLen bytes should appear in the error.
	longStderr := strings.Repeat("A", maxStderrLen*2)
	script := fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", longStderr)

	_, err := e.Run(ctx, "sh", "-c", script)
	require.Error(t, err)

	msg := strings.TrimPrefix(err.Error(), "exec sh: ")
	assert.Equal(t, strings.Repeat("A", maxStderrLen), msg[:maxStderrLen])
	assert.NotContains(t, msg, strings.Repeat("A", maxStderrLen+1))
}

func TestRealExecutor_PreservesExitError(t *testing.T) {
	e := &RealExecutor{}

	_, err := e.Run(context.Background(), "sh", "-c", "echo 'error message' >&2; exit 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error message")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestRealExecutor_Run(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	t.Run("returns stdout only", func(t *testing.T) {
		out, err := e.Run(ctx, "sh", "-c", "echo out; echo err >&2")
		require.NoError(t, err)
		assert.Equal(t, "out\n", string(out))
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := e.Run(ctx, "nonexistent-command-12345")
		require.Error(t, err)
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})
}

func TestRealExecutor_RunStdin(t *testing.T) {
	e := &RealExecutor{}

	out, err := e.RunStdin(context.Background(), strings.NewReader("hello body"), "cat")
	require.NoError(t, err)
	assert.Equal(t, "hello body", string(out))
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{name: "plain", cmd: "task", args: []string{"add", "milk", "+in"}, want: "task add milk +in"},
		{name: "spaces quoted", cmd: "task", args: []string{"add", "call the dentist"}, want: `task add "call the dentist"`},
		{name: "empty arg", cmd: "khard", args: []string{"list", ""}, want: `khard list ""`},
		{name: "no args", cmd: "khal", want: "khal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandString(tt.cmd, tt.args...))
		})
	}
}

func TestRecordingExecutor(t *testing.T) {
	e := &RecordingExecutor{
		Outputs: map[string][]byte{"khal": []byte("event")},
		Errors:  map[string]error{"himalaya": errors.New("smtp down")},
	}
	ctx := context.Background()

	out, err := e.Run(ctx, "khal", "list")
	require.NoError(t, err)
	assert.Equal(t, "event", string(out))

	_, err = e.RunStdin(ctx, strings.NewReader("body"), "himalaya", "message", "write")
	require.EqualError(t, err, "smtp down")

	last, ok := e.Last()
	require.True(t, ok)
	assert.Equal(t, "himalaya", last.Cmd)
	assert.Equal(t, "body", last.Stdin)
	assert.Len(t, e.Commands, 2)

	e.Reset()
	_, ok = e.Last()
	assert.False(t, ok)
}

func TestRecordingExecutor_Respond(t *testing.T) {
	e := &RecordingExecutor{
		Outputs: map[string][]byte{"task": []byte("ignored")},
		Respond: func(cmd string, args []string) ([]byte, error) {
			if len(args) > 0 && args[len(args)-1] == "export" {
				return []byte("[]"), nil
			}
			return nil, errors.New("unexpected " + cmd)
		},
	}

	out, err := e.Run(context.Background(), "task", "status:pending", "export")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	_, err = e.Run(context.Background(), "task", "add", "milk")
	require.EqualError(t, err, "unexpected task")
	assert.Len(t, e.Commands, 2)
}
