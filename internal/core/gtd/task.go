package gtd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Status is a TaskWarrior task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusDeleted   Status = "deleted"
	StatusWaiting   Status = "waiting"
	StatusRecurring Status = "recurring"
)

// Task is one task as exported by TaskWarrior. Context, energy and
// complexity are user defined attributes; they stay empty unless the user's
// taskrc declares them.
type Task struct {
	ID          int          `json:"id"`
	UUID        string       `json:"uuid"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Entry       *Date        `json:"entry,omitempty"`
	Modified    *Date        `json:"modified,omitempty"`
	Start       *Date        `json:"start,omitempty"`
	End         *Date        `json:"end,omitempty"`
	Due         *Date        `json:"due,omitempty"`
	Wait        *Date        `json:"wait,omitempty"`
	Scheduled   *Date        `json:"scheduled,omitempty"`
	Until       *Date        `json:"until,omitempty"`
	Priority    string       `json:"priority,omitempty"`
	Project     string       `json:"project,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Depends     UUIDList     `json:"depends,omitempty"`
	Parent      string       `json:"parent,omitempty"`
	Recur       string       `json:"recur,omitempty"`
	Mask        string       `json:"mask,omitempty"`
	Context     string       `json:"context,omitempty"`
	Energy      string       `json:"energy,omitempty"`
	Complexity  Minutes      `json:"complexity,omitempty"`
	Urgency     float64      `json:"urgency"`
}

// Annotation is a timestamped note on a task.
type Annotation struct {
	Entry       *Date  `json:"entry,omitempty"`
	Description string `json:"description"`
}

// HasTag reports whether the task carries tag.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// WaitingAt reports whether the task is hidden until later.
func (t Task) WaitingAt(now time.Time) bool {
	if t.Status == StatusWaiting {
		return true
	}
	return t.Wait != nil && t.Wait.After(now)
}

// Blocked reports whether the task depends on other tasks.
func (t Task) Blocked() bool { return len(t.Depends) > 0 }

// OverdueAt reports whether a pending task is past its due date.
func (t Task) OverdueAt(now time.Time) bool {
	return t.Status == StatusPending && t.Due != nil && t.Due.Before(now)
}

// lastActivity is the later of modified and end, or zero.
func (t Task) lastActivity() time.Time {
	var last time.Time
	for _, d := range []*Date{t.Modified, t.End} {
		if d != nil && d.After(last) {
			last = d.Time
		}
	}
	return last
}

const taskwarriorLayout = "20060102T150405Z"

// Date is a TaskWarrior timestamp. It decodes the compact export form
// (20260107T120000Z) and RFC 3339, and encodes as RFC 3339 UTC.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("parse date: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("parse date %q: %w", s, err)
		}
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// UUIDList holds task dependencies. Newer TaskWarrior exports them as an
// array, older ones as a comma separated string.
type UUIDList []string

func (l *UUIDList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*l = list
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("parse depends: %w", err)
	}
	*l = nil
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			*l = append(*l, id)
		}
	}
	return nil
}

// Minutes is the complexity estimate, exported as a number or a string
// depending on how the attribute was declared.
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse complexity %q: %w", s, err)
	}
	*m = Minutes(f)
	return nil
}

var noMatchPattern = regexp.MustCompile(`(?i)no matches|no tasks`)

func isNoMatch(s string) bool {
	return noMatchPattern.MatchString(s)
}

// DecodeExport parses `task export` output. Besides a JSON array it accepts
// TaskWarrior's "No matches." notice and the one-object-per-line form
// written when rc.json.array is off.
func DecodeExport(out []byte) ([]Task, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 || (trimmed[0] != '[' && trimmed[0] != '{' && isNoMatch(string(trimmed))) {
		return []Task{}, nil
	}

	tasks := []Task{}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		return tasks, nil
	}

	for n, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSuffix(bytes.TrimSpace(line), []byte(","))
		if len(line) == 0 {
			continue
		}
		var task Task
		if err := json.Unmarshal(line, &task); err != nil {
			return nil, fmt.Errorf("decode export line %d: %w", n+1, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
