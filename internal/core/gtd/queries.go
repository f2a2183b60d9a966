package gtd

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Report is a task listing enriched for an assistant: counts, a summary
// with recommendations, and optional groupings.
type Report struct {
	Tasks    []Task                    `json:"tasks"`
	Metadata Metadata                  `json:"metadata"`
	Insights Insights                  `json:"insights"`
	Contexts map[string]ContextSummary `json:"contexts,omitempty"`
	Groups   map[string][]Task         `json:"groups,omitempty"`
}

type Metadata struct {
	Total      int `json:"total"`
	Actionable int `json:"actionable"`
	Blocked    int `json:"blocked"`
	Waiting    int `json:"waiting"`
	Completed  int `json:"completed,omitempty"`
}

type Insights struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// ContextSummary counts next actions available in one context.
type ContextSummary struct {
	Count        int `json:"count"`
	HighPriority int `json:"high_priority"`
}

// insightsFor summarizes tasks and recommends on high priority and overdue
// work. withWarnings adds the missing-context warning.
func insightsFor(tasks []Task, now time.Time, withWarnings bool) Insights {
	var actionable, blocked, waiting, high, overdue, noContext int
	for _, task := range tasks {
		if task.Blocked() {
			blocked++
		}
		if task.Wait != nil || task.Status == StatusWaiting {
			waiting++
		} else if task.Status == StatusPending && !task.Blocked() {
			actionable++
		}
		if task.Status != StatusPending {
			continue
		}
		if task.Priority == "H" {
			high++
		}
		if task.OverdueAt(now) {
			overdue++
		}
		if task.Context == "" {
			noContext++
		}
	}

	in := Insights{
		Summary: fmt.Sprintf("Found %d tasks: %d actionable, %d blocked, %d waiting", len(tasks), actionable, blocked, waiting),
	}
	if high > 0 {
		in.Recommendations = append(in.Recommendations, fmt.Sprintf("%d high priority tasks need attention", high))
	}
	if overdue > 0 {
		in.Recommendations = append(in.Recommendations, fmt.Sprintf("%d tasks are overdue", overdue))
	}
	if withWarnings && noContext > 0 {
		in.Warnings = append(in.Warnings, fmt.Sprintf("%d tasks have no context set", noContext))
	}
	return in
}

func byUrgency(a, b Task) int { return cmp.Compare(b.Urgency, a.Urgency) }

func limit(tasks []Task, n int) []Task {
	if n > 0 && len(tasks) > n {
		return tasks[:n]
	}
	return tasks
}

// Filter selects tasks for List. Status defaults to pending; "all" lifts
// the status filter. Dates are passed to TaskWarrior as given.
type Filter struct {
	Project         string
	Tags            []string
	Status          string
	Contains        string
	DueBefore       string
	DueAfter        string
	ScheduledBefore string
	ScheduledAfter  string
	ModifiedBefore  string
	ModifiedAfter   string
	Limit           int
}

func (f Filter) args() ([]string, error) {
	var a attrs
	switch status := strings.TrimSpace(f.Status); status {
	case "":
		a.set("status", string(StatusPending))
	case "all":
	case string(StatusPending), string(StatusCompleted), string(StatusDeleted), string(StatusWaiting), string(StatusRecurring):
		a.set("status", status)
	default:
		return nil, fmt.Errorf("%w: status %q", ErrInvalidValue, status)
	}
	a.set("project", f.Project)
	if err := a.tags("+", f.Tags); err != nil {
		return nil, err
	}
	a.set("description.contains", f.Contains)
	a.set("due.before", f.DueBefore)
	a.set("due.after", f.DueAfter)
	a.set("scheduled.before", f.ScheduledBefore)
	a.set("scheduled.after", f.ScheduledAfter)
	a.set("modified.before", f.ModifiedBefore)
	a.set("modified.after", f.ModifiedAfter)
	return a, nil
}

// List returns matching tasks, most urgent first, capped at f.Limit or the
// configured list limit.
func (t *Tasks) List(ctx context.Context, f Filter) ([]Task, error) {
	args, err := f.args()
	if err != nil {
		return nil, err
	}
	tasks, err := t.export(ctx, args...)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(tasks, byUrgency)
	n := f.Limit
	if n < 1 {
		n = t.cfg.ListLimit
	}
	return limit(tasks, n), nil
}

// timeAvailable buckets how long the user has, in minutes.
var timeAvailable = map[string]int{
	"5min":    5,
	"15min":   15,
	"30min":   30,
	"1hour":   60,
	"2hours+": 999,
}

// NextActionsQuery narrows get_next_actions.
type NextActionsQuery struct {
	Context        string
	Energy         string
	TimeAvailable  string
	IncludeBlocked bool
	Limit          int
}

// fits reports whether a task fits into minutes. Tasks with a complexity
// estimate compare against it; very urgent tasks without one need half an
// hour.
func fits(task Task, minutes int) bool {
	if task.Complexity > 0 {
		return int(task.Complexity) <= minutes
	}
	if task.Urgency > 10 {
		return minutes >= 30
	}
	return true
}

// NextActions answers "what can I do now": pending tasks that are neither
// waiting nor someday/maybe, unblocked unless asked otherwise, most urgent
// first.
func (t *Tasks) NextActions(ctx context.Context, q NextActionsQuery) (Report, error) {
	var a attrs
	a.set("status", string(StatusPending))
	a = append(a, "-"+t.cfg.SomedayTag)
	a.set("context", q.Context)
	energy, err := level("energy", q.Energy)
	if err != nil {
		return Report{}, err
	}
	a.set("energy", energy)

	minutes := 0
	if q.TimeAvailable != "" {
		var ok bool
		if minutes, ok = timeAvailable[q.TimeAvailable]; !ok {
			return Report{}, fmt.Errorf("%w: time_available %q", ErrInvalidValue, q.TimeAvailable)
		}
	}

	all, err := t.export(ctx, a...)
	if err != nil {
		return Report{}, err
	}

	now := t.clock.Now()
	var blocked, waiting int
	actions := []Task{}
	for _, task := range all {
		if task.Blocked() {
			blocked++
		}
		if task.WaitingAt(now) {
			waiting++
			continue
		}
		if task.Blocked() && !q.IncludeBlocked {
			continue
		}
		if minutes > 0 && !fits(task, minutes) {
			continue
		}
		actions = append(actions, task)
	}
	slices.SortStableFunc(actions, byUrgency)
	actions = limit(actions, q.Limit)

	insights := insightsFor(actions, now, true)
	if len(actions) == 0 {
		insights.Summary = "No actionable tasks found"
		if blocked > 0 {
			insights.Recommendations = append(insights.Recommendations, fmt.Sprintf("%d tasks are blocked by dependencies", blocked))
		}
		if waiting > 0 {
			insights.Recommendations = append(insights.Recommendations, fmt.Sprintf("%d tasks are waiting", waiting))
		}
	} else if top := actions[0]; top.Urgency > 10 {
		insights.Recommendations = append([]string{fmt.Sprintf("Start with %q (urgency: %.1f)", top.Description, top.Urgency)}, insights.Recommendations...)
	}

	var contexts map[string]ContextSummary
	for _, task := range actions {
		if task.Context == "" {
			continue
		}
		if contexts == nil {
			contexts = make(map[string]ContextSummary)
		}
		c := contexts[task.Context]
		c.Count++
		if task.Priority == "H" {
			c.HighPriority++
		}
		contexts[task.Context] = c
	}

	return Report{
		Tasks: actions,
		Metadata: Metadata{
			Total:      len(all),
			Actionable: len(actions),
			Blocked:    blocked,
			Waiting:    waiting,
		},
		Insights: insights,
		Contexts: contexts,
	}, nil
}

// Inbox returns the pending inbox items to clarify.
func (t *Tasks) Inbox(ctx context.Context) (Report, error) {
	tasks, err := t.export(ctx, "status:"+string(StatusPending), "+"+t.inboxTag)
	if err != nil {
		return Report{}, err
	}

	insights := insightsFor(tasks, t.clock.Now(), false)
	if len(tasks) == 0 {
		insights.Summary = "Inbox is empty - great job!"
		insights.Recommendations = []string{"Your inbox is clear. Focus on next actions."}
	} else {
		insights.Summary = fmt.Sprintf("%d items in inbox need processing", len(tasks))
		insights.Recommendations = append([]string{"Process these inbox items: clarify, organize, or defer"}, insights.Recommendations...)
	}

	return Report{
		Tasks:    tasks,
		Metadata: Metadata{Total: len(tasks), Actionable: len(tasks)},
		Insights: insights,
	}, nil
}

// pendingOrWaiting matches tasks not yet done, including those TaskWarrior
// versions before 2.6 store with the waiting status.
var pendingOrWaiting = []string{"(", "status:" + string(StatusPending), "or", "status:" + string(StatusWaiting), ")"}

// WaitingFor groups hidden tasks by groupBy: "blocker" (the latest
// annotation, the default), "project" or "date".
func (t *Tasks) WaitingFor(ctx context.Context, groupBy string) (Report, error) {
	if groupBy == "" {
		groupBy = "blocker"
	}
	if groupBy != "blocker" && groupBy != "project" && groupBy != "date" {
		return Report{}, fmt.Errorf("%w: group_by %q", ErrInvalidValue, groupBy)
	}

	all, err := t.export(ctx, pendingOrWaiting...)
	if err != nil {
		return Report{}, err
	}

	now := t.clock.Now()
	waiting := []Task{}
	groups := make(map[string][]Task)
	for _, task := range all {
		if !task.WaitingAt(now) {
			continue
		}
		waiting = append(waiting, task)
		key := waitingKey(task, groupBy)
		groups[key] = append(groups[key], task)
	}

	insights := insightsFor(waiting, now, false)
	if len(waiting) == 0 {
		insights.Summary = "Nothing waiting - all tasks are actionable"
	} else {
		insights.Summary = fmt.Sprintf("%d tasks waiting", len(waiting))
		insights.Recommendations = append([]string{"Review waiting items and follow up if needed"}, insights.Recommendations...)
	}

	return Report{
		Tasks:    waiting,
		Metadata: Metadata{Total: len(waiting), Waiting: len(waiting)},
		Insights: insights,
		Groups:   groups,
	}, nil
}

func waitingKey(task Task, groupBy string) string {
	switch groupBy {
	case "project":
		if task.Project == "" {
			return "(no project)"
		}
		return task.Project
	case "date":
		if task.Wait == nil {
			return "(no wait date)"
		}
		return task.Wait.Format("2006-01-02")
	}

	if n := len(task.Annotations); n > 0 && task.Annotations[n-1].Description != "" {
		note := []rune(task.Annotations[n-1].Description)
		if len(note) > 50 {
			note = note[:50]
		}
		return string(note)
	}
	return "(waiting)"
}

const somedayStaleAfter = 90 * 24 * time.Hour

// SomedayMaybe lists parked ideas grouped by project, flagging those not
// touched in 90 days.
func (t *Tasks) SomedayMaybe(ctx context.Context, project string, n int) (Report, error) {
	var a attrs
	a.set("status", string(StatusPending))
	a = append(a, "+"+t.cfg.SomedayTag)
	a.set("project", project)

	all, err := t.export(ctx, a...)
	if err != nil {
		return Report{}, err
	}

	slices.SortStableFunc(all, func(x, y Task) int {
		if c := cmp.Compare(x.Project, y.Project); c != 0 {
			return c
		}
		return y.lastActivity().Compare(x.lastActivity())
	})
	tasks := limit(all, n)

	now := t.clock.Now()
	groups := make(map[string][]Task)
	stale := 0
	for _, task := range tasks {
		key := task.Project
		if key == "" {
			key = "no_project"
		}
		groups[key] = append(groups[key], task)
		if task.Modified == nil || now.Sub(task.Modified.Time) > somedayStaleAfter {
			stale++
		}
	}

	insights := Insights{
		Summary: fmt.Sprintf("%d someday/maybe items across %d projects", len(tasks), len(groups)),
	}
	if stale > 0 {
		insights.Recommendations = append(insights.Recommendations, fmt.Sprintf("%d items not reviewed in 90+ days", stale))
	}
	if len(tasks) == 0 {
		insights.Recommendations = append(insights.Recommendations, "No someday/maybe items. Consider adding aspirational tasks.")
	} else {
		insights.Recommendations = append(insights.Recommendations,
			"Review these during weekly review",
			"Consider promoting actionable items to active projects",
		)
	}
	if stale > 5 {
		insights.Warnings = []string{fmt.Sprintf("%d stale items need review", stale)}
	}

	return Report{
		Tasks:    tasks,
		Metadata: Metadata{Total: len(all)},
		Insights: insights,
		Groups:   groups,
	}, nil
}
