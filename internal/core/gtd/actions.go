package gtd

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pentaxis93/spandaworks/internal/core/inbox"
)

// NewTask describes a task to add. Dates accept anything TaskWarrior does:
// ISO dates, "tomorrow", "eow" and so on.
type NewTask struct {
	Description string
	Project     string
	Priority    string
	Tags        []string
	Due         string
	Scheduled   string
	Wait        string
	Until       string
	Context     string
	Energy      string
	Parent      string
	Recur       string
	Depends     []string
	Annotations []string
}

// Changes describes a modification. Empty fields are left alone; Clear
// names attributes to remove (for example "due" or "project").
type Changes struct {
	Description   string
	Status        string
	Project       string
	Priority      string
	Due           string
	Scheduled     string
	Wait          string
	Until         string
	Context       string
	Energy        string
	Parent        string
	Recur         string
	AddTags       []string
	RemoveTags    []string
	AddDepends    []string
	RemoveDepends []string
	Clear         []string
}

var clearable = map[string]bool{
	"project": true, "priority": true, "due": true, "scheduled": true, "wait": true,
	"until": true, "context": true, "energy": true, "parent": true, "recur": true,
}

var modifiableStatus = map[string]bool{
	string(StatusPending): true, string(StatusCompleted): true,
	string(StatusDeleted): true, string(StatusWaiting): true,
}

// level normalizes the H/M/L scale shared by priority and energy.
func level(field, v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return "", nil
	case "h", "high":
		return "H", nil
	case "m", "medium":
		return "M", nil
	case "l", "low":
		return "L", nil
	}
	return "", fmt.Errorf("%w: %s must be H, M or L, got %q", ErrInvalidValue, field, v)
}

type attrs []string

func (a *attrs) set(name, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*a = append(*a, name+":"+value)
	}
}

func (a *attrs) levels(priority, energy string) error {
	p, err := level("priority", priority)
	if err != nil {
		return err
	}
	e, err := level("energy", energy)
	if err != nil {
		return err
	}
	a.set("priority", p)
	a.set("energy", e)
	return nil
}

func (a *attrs) tags(prefix string, tags []string) error {
	for _, tag := range tags {
		tag = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(tag), "+"), "-")
		if tag == "" {
			continue
		}
		if strings.ContainsAny(tag, " \t\n") {
			return fmt.Errorf("%w: tag %q contains whitespace", ErrInvalidValue, tag)
		}
		*a = append(*a, prefix+tag)
	}
	return nil
}

// depends renders add and remove lists as one depends:a,-b attribute.
func (a *attrs) depends(add, remove []string) error {
	var ids []string
	for _, group := range []struct {
		prefix string
		list   []string
	}{{"", add}, {"-", remove}} {
		for _, id := range group.list {
			if strings.TrimSpace(id) == "" {
				continue
			}
			u, err := parseUUID(id)
			if err != nil {
				return err
			}
			ids = append(ids, group.prefix+u)
		}
	}
	a.set("depends", strings.Join(ids, ","))
	return nil
}

func (a *attrs) parent(parent string) error {
	if strings.TrimSpace(parent) == "" {
		return nil
	}
	u, err := parseUUID(parent)
	if err != nil {
		return err
	}
	a.set("parent", u)
	return nil
}

func (in NewTask) args() ([]string, error) {
	desc, err := required("description", in.Description)
	if err != nil {
		return nil, err
	}

	a := attrs{"add"}
	a.set("project", in.Project)
	if err := a.levels(in.Priority, in.Energy); err != nil {
		return nil, err
	}
	if err := a.tags("+", in.Tags); err != nil {
		return nil, err
	}
	a.set("due", in.Due)
	a.set("scheduled", in.Scheduled)
	a.set("wait", in.Wait)
	a.set("until", in.Until)
	a.set("context", in.Context)
	a.set("recur", in.Recur)
	if err := a.parent(in.Parent); err != nil {
		return nil, err
	}
	if err := a.depends(in.Depends, nil); err != nil {
		return nil, err
	}
	return append(a, "--", desc), nil
}

func (c Changes) args() ([]string, error) {
	var a attrs
	a.set("description", c.Description)
	if s := strings.TrimSpace(c.Status); s != "" {
		if !modifiableStatus[s] {
			return nil, fmt.Errorf("%w: status %q", ErrInvalidValue, s)
		}
		a.set("status", s)
	}
	a.set("project", c.Project)
	if err := a.levels(c.Priority, c.Energy); err != nil {
		return nil, err
	}
	a.set("due", c.Due)
	a.set("scheduled", c.Scheduled)
	a.set("wait", c.Wait)
	a.set("until", c.Until)
	a.set("context", c.Context)
	a.set("recur", c.Recur)
	if err := a.parent(c.Parent); err != nil {
		return nil, err
	}
	if err := a.tags("+", c.AddTags); err != nil {
		return nil, err
	}
	if err := a.tags("-", c.RemoveTags); err != nil {
		return nil, err
	}
	if err := a.depends(c.AddDepends, c.RemoveDepends); err != nil {
		return nil, err
	}
	for _, name := range c.Clear {
		name = strings.ToLower(strings.TrimSpace(name))
		if !clearable[name] {
			return nil, fmt.Errorf("%w: cannot clear %q", ErrInvalidValue, name)
		}
		a = append(a, name+":")
	}
	return a, nil
}

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// Add creates a task and returns it as stored, annotations included.
func (t *Tasks) Add(ctx context.Context, in NewTask) (Task, error) {
	args, err := in.args()
	if err != nil {
		return Task{}, err
	}

	out, err := t.run(ctx, args...)
	if err != nil {
		return Task{}, fmt.Errorf("add task: %w", err)
	}

	task, err := t.created(ctx, string(out))
	if err != nil {
		return Task{}, err
	}

	for _, note := range in.Annotations {
		if strings.TrimSpace(note) == "" {
			continue
		}
		if task, err = t.Annotate(ctx, task.UUID, note); err != nil {
			return Task{}, err
		}
	}

	t.log.Info().Ctx(ctx).Str("uuid", task.UUID).Msg("task added")
	return task, nil
}

// created finds the task `task add` just reported, by UUID or by the
// "Created task N." id.
func (t *Tasks) created(ctx context.Context, out string) (Task, error) {
	if id := uuidPattern.FindString(out); id != "" {
		return t.Get(ctx, id)
	}

	if n := inbox.ParseTaskID(out); n > 0 {
		tasks, err := t.export(ctx, strconv.Itoa(n))
		if err != nil {
			return Task{}, err
		}
		if len(tasks) > 0 {
			return tasks[0], nil
		}
	}
	return Task{}, fmt.Errorf("%w: no task id in %q", ErrTaskNotFound, strings.TrimSpace(out))
}

// Modify applies c to the task and returns it refetched. Without changes the
// current task is returned and nothing is run.
func (t *Tasks) Modify(ctx context.Context, id string, c Changes) (Task, error) {
	args, err := c.args()
	if err != nil {
		return Task{}, err
	}

	current, err := t.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if len(args) == 0 {
		return current, nil
	}

	if _, err := t.run(ctx, append([]string{current.UUID, "modify"}, args...)...); err != nil {
		return Task{}, fmt.Errorf("modify task: %w", err)
	}
	return t.Get(ctx, current.UUID)
}

// Done completes the task. Completing an already completed task is a no-op.
func (t *Tasks) Done(ctx context.Context, id string) (Task, error) {
	current, err := t.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if current.Status == StatusCompleted {
		return current, nil
	}

	if _, err := t.run(ctx, current.UUID, "done"); err != nil {
		return Task{}, fmt.Errorf("complete task: %w", err)
	}

	after, err := t.Get(ctx, current.UUID)
	if err != nil {
		return Task{}, err
	}
	if after.Status != StatusCompleted {
		return Task{}, fmt.Errorf("%w: status is %s", ErrNotCompleted, after.Status)
	}
	t.log.Info().Ctx(ctx).Str("uuid", after.UUID).Msg("task completed")
	return after, nil
}

// Delete marks the task deleted and returns it.
func (t *Tasks) Delete(ctx context.Context, id string) (Task, error) {
	return t.command(ctx, id, "delete", "delete task")
}

// Start marks the task active.
func (t *Tasks) Start(ctx context.Context, id string) (Task, error) {
	return t.command(ctx, id, "start", "start task")
}

// Stop clears the task's active mark.
func (t *Tasks) Stop(ctx context.Context, id string) (Task, error) {
	return t.command(ctx, id, "stop", "stop task")
}

// Annotate appends a note to the task.
func (t *Tasks) Annotate(ctx context.Context, id, note string) (Task, error) {
	note, err := required("annotation", note)
	if err != nil {
		return Task{}, err
	}
	return t.command(ctx, id, "annotate", "annotate task", "--", note)
}

// Denotate removes the annotation matching note.
func (t *Tasks) Denotate(ctx context.Context, id, note string) (Task, error) {
	note, err := required("annotation", note)
	if err != nil {
		return Task{}, err
	}
	return t.command(ctx, id, "denotate", "remove annotation", "--", note)
}

func (t *Tasks) command(ctx context.Context, id, verb, action string, extra ...string) (Task, error) {
	id, err := parseUUID(id)
	if err != nil {
		return Task{}, err
	}
	if _, err := t.Get(ctx, id); err != nil {
		return Task{}, err
	}

	if _, err := t.run(ctx, append([]string{id, verb}, extra...)...); err != nil {
		return Task{}, fmt.Errorf("%s: %w", action, err)
	}
	return t.Get(ctx, id)
}
