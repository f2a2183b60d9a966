// Package inbox captures thoughts into the TaskWarrior GTD inbox.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

// lookPathFunc is the function used to find the TaskWarrior binary.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

var (
	// ErrEmptyText is returned when the capture text is blank.
	ErrEmptyText = errors.New("task description cannot be empty")

	// ErrTaskWarriorMissing is returned when the TaskWarrior binary is not on PATH.
	ErrTaskWarriorMissing = errors.New("TaskWarrior not found, install it with your package manager")
)

// Options describes a single capture.
type Options struct {
	Text    string
	Tags    []string
	Project string
	DryRun  bool
}

// Result reports what was captured. TaskID is zero when TaskWarrior's output
// carried no id or when the capture was a dry run.
type Result struct {
	TaskID  int
	Command string
	DryRun  bool
}

// BuildArgs returns the `task` arguments for a capture: the description, the
// inbox tag, configured default tags, the requested tags, and the project.
func BuildArgs(opts Options, cfg config.InboxConfig) []string {
	args := []string{"add", opts.Text, "+" + cfg.Tag}

	for _, tag := range append(append([]string{}, cfg.DefaultTags...), opts.Tags...) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "+") {
			tag = "+" + tag
		}
		args = append(args, tag)
	}

	if p := strings.TrimSpace(opts.Project); p != "" {
		args = append(args, "project:"+p)
	}

	return args
}

// ParseTaskID extracts the task id from TaskWarrior's "Created task N." line.
// It returns 0 when no id is present.
func ParseTaskID(output string) int {
	for _, word := range strings.Fields(output) {
		id, err := strconv.Atoi(strings.TrimRight(word, "."))
		if err == nil && id > 0 {
			return id
		}
	}
	return 0
}

// Capturer runs captures against TaskWarrior.
type Capturer struct {
	cfg  config.InboxConfig
	exec executil.Executor
	log  zerolog.Logger
}

// NewCapturer creates a Capturer.
func NewCapturer(cfg config.InboxConfig, exec executil.Executor, log zerolog.Logger) *Capturer {
	return &Capturer{cfg: cfg, exec: exec, log: log}
}

// Capture adds opts.Text to the inbox. In dry run mode the command is
// returned without being executed.
func (c *Capturer) Capture(ctx context.Context, opts Options) (Result, error) {
	opts.Text = strings.TrimSpace(opts.Text)
	if opts.Text == "" {
		return Result{}, ErrEmptyText
	}

	if _, err := lookPathFunc(c.cfg.Command); err != nil {
		return Result{}, ErrTaskWarriorMissing
	}

	args := BuildArgs(opts, c.cfg)
	result := Result{
		Command: executil.CommandString(c.cfg.Command, args...),
		DryRun:  opts.DryRun,
	}

	if opts.DryRun {
		c.log.Debug().Str("command", result.Command).Msg("dry run, not capturing")
		return result, nil
	}

	out, err := c.exec.Run(ctx, c.cfg.Command, args...)
	if err != nil {
		return Result{}, fmt.Errorf("TaskWarrior failed: %w", err)
	}

	result.TaskID = ParseTaskID(string(out))
	c.log.Info().Int("task_id", result.TaskID).Msg("captured to inbox")
	return result, nil
}
