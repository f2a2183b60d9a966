package executil

import (
	"context"
	"io"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Cmd   string
	Args  []string
	Stdin string
}

// RecordingExecutor captures commands for testing.
// Configure Outputs and Errors maps to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps command names to their output.
	// Key is the command name (e.g., "khal").
	Outputs map[string][]byte

	// Errors maps command names to their error.
	Errors map[string]error

	// Respond, when set, answers every call in place of Outputs and Errors.
	// Use it when one command must answer differently per argument list.
	Respond func(cmd string, args []string) ([]byte, error)
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record("", cmd, args...)
}

// RunStdin records the command and everything read from r.
func (e *RecordingExecutor) RunStdin(ctx context.Context, r io.Reader, cmd string, args ...string) ([]byte, error) {
	var stdin string
	if r != nil {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		stdin = string(b)
	}
	return e.record(stdin, cmd, args...)
}

func (e *RecordingExecutor) record(stdin, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Cmd:   cmd,
		Args:  args,
		Stdin: stdin,
	})

	if e.Respond != nil {
		return e.Respond(cmd, args)
	}

	var out []byte
	var err error

	if e.Outputs != nil {
		out = e.Outputs[cmd]
	}
	if e.Errors != nil {
		err = e.Errors[cmd]
	}

	return out, err
}

// Last returns the most recently recorded command.
func (e *RecordingExecutor) Last() (RecordedCommand, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.Commands) == 0 {
		return RecordedCommand{}, false
	}
	return e.Commands[len(e.Commands)-1], true
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
