// Package gtd runs Getting Things Done workflows against TaskWarrior.
//
// Tasks are read with `task <filter> export` and written with the regular
// add, modify, done, delete, start, stop, annotate and denotate commands,
// always addressed by UUID so concurrent edits never hit the wrong task.
// On top of that sit the views a weekly GTD practice needs: next actions,
// the inbox, waiting-for, someday/maybe and the weekly review itself.
package gtd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
	"github.com/pentaxis93/spandaworks/pkg/workpool"
)

var (
	ErrInvalidUUID  = errors.New("invalid task UUID")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidValue = errors.New("invalid value")
	ErrMissingArg   = errors.New("missing required argument")
	ErrNotCompleted = errors.New("task was not marked completed")
)

// overrides keep TaskWarrior from prompting, force array exports and make
// `task add` report the new task's UUID.
var overrides = []string{"rc.confirmation=off", "rc.json.array=on", "rc.verbose=new-uuid"}

// Tasks is the TaskWarrior-backed GTD service.
type Tasks struct {
	task     string
	inboxTag string
	cfg      config.GTDConfig
	exec     executil.Executor
	clock    clockwork.Clock
	log      zerolog.Logger
	pool     *workpool.Pool
}

// NewTasks creates a Tasks service. It shares the TaskWarrior binary and
// inbox tag with inbox capture.
func NewTasks(inbox config.InboxConfig, cfg config.GTDConfig, exec executil.Executor, clock clockwork.Clock, log zerolog.Logger) *Tasks {
	if cfg.SomedayTag == "" {
		cfg.SomedayTag = "sdm"
	}
	if cfg.StaleDays < 1 {
		cfg.StaleDays = 7
	}
	if cfg.ListLimit < 1 {
		cfg.ListLimit = 50
	}
	return &Tasks{
		task:     inbox.Command,
		inboxTag: strings.TrimPrefix(inbox.Tag, "+"),
		cfg:      cfg,
		exec:     exec,
		clock:    clock,
		log:      log,
		pool:     workpool.New(4),
	}
}

func (t *Tasks) run(ctx context.Context, args ...string) ([]byte, error) {
	full := make([]string, 0, len(overrides)+len(args))
	full = append(full, overrides...)
	full = append(full, args...)

	t.log.Debug().Ctx(ctx).Str("command", executil.CommandString(t.task, full...)).Msg("running TaskWarrior")
	return t.exec.Run(ctx, t.task, full...)
}

// export returns the tasks matching filter. TaskWarrior versions that exit
// non-zero on an empty match are treated as matching nothing.
func (t *Tasks) export(ctx context.Context, filter ...string) ([]Task, error) {
	args := append(append([]string{}, filter...), "export")

	out, err := t.run(ctx, args...)
	if err != nil {
		if isNoMatch(err.Error()) {
			return []Task{}, nil
		}
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	return DecodeExport(out)
}

// Get returns the task with the given UUID, whatever its status.
func (t *Tasks) Get(ctx context.Context, id string) (Task, error) {
	id, err := parseUUID(id)
	if err != nil {
		return Task{}, err
	}

	tasks, err := t.export(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if len(tasks) == 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return tasks[0], nil
}

func parseUUID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidUUID, id)
	}
	return u.String(), nil
}

func required(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArg, name)
	}
	return value, nil
}
