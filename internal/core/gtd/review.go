package gtd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Habit is a recurring task scored by its instance mask, where "+" marks a
// completed instance.
type Habit struct {
	UUID           string `json:"uuid"`
	Description    string `json:"description"`
	Recur          string `json:"recur,omitempty"`
	Mask           string `json:"mask"`
	CompletionRate int    `json:"completion_rate"`
}

// Broken reports whether the latest instance was missed.
func (h Habit) Broken() bool {
	return h.Mask != "" && !strings.HasSuffix(h.Mask, "+")
}

// Strong reports a habit kept at least 80% of the time over five or more
// instances.
func (h Habit) Strong() bool {
	return h.CompletionRate >= 80 && len(h.Mask) >= 5
}

func habitOf(task Task) Habit {
	h := Habit{UUID: task.UUID, Description: task.Description, Recur: task.Recur, Mask: task.Mask}
	if h.Description == "" {
		h.Description = "Unknown habit"
	}
	if n := len(task.Mask); n > 0 {
		h.CompletionRate = (strings.Count(task.Mask, "+")*200 + n) / (2 * n)
	}
	return h
}

// Review is the weekly review: what got done, what needs clarifying, and
// which projects and habits need attention.
type Review struct {
	Metadata                   Metadata `json:"metadata"`
	Insights                   Insights `json:"insights"`
	Inbox                      []Task   `json:"inbox"`
	CompletedThisWeek          []Task   `json:"completed_this_week"`
	Overdue                    []Task   `json:"overdue"`
	Waiting                    []Task   `json:"waiting"`
	Projects                   []string `json:"projects"`
	ProjectsWithoutNextActions []string `json:"projects_without_next_actions"`
	StalledProjects            []string `json:"stalled_projects"`
	Habits                     []Habit  `json:"habits"`
	HabitsWithBrokenStreaks    []string `json:"habits_with_broken_streaks"`
	StrongHabits               []string `json:"strong_habits"`
	HabitAverage               int      `json:"habit_average"`
}

// WeeklyReview gathers the review. Projects are stalled when none of their
// tasks changed within the configured number of days.
func (t *Tasks) WeeklyReview(ctx context.Context) (Review, error) {
	now := t.clock.Now()

	pending, err := t.export(ctx, pendingOrWaiting...)
	if err != nil {
		return Review{}, err
	}
	weekAgo := now.AddDate(0, 0, -7).UTC().Format("2006-01-02")
	completed, err := t.export(ctx, "status:"+string(StatusCompleted), "end.after:"+weekAgo)
	if err != nil {
		return Review{}, err
	}
	recurring, err := t.export(ctx, "status:"+string(StatusRecurring))
	if err != nil {
		return Review{}, err
	}

	r := Review{
		Inbox:                      []Task{},
		CompletedThisWeek:          completed,
		Overdue:                    []Task{},
		Waiting:                    []Task{},
		Projects:                   []string{},
		ProjectsWithoutNextActions: []string{},
		Habits:                     []Habit{},
		HabitsWithBrokenStreaks:    []string{},
		StrongHabits:               []string{},
	}

	hasNext := make(map[string]bool)
	for _, task := range pending {
		if task.HasTag(t.inboxTag) {
			r.Inbox = append(r.Inbox, task)
		}
		if task.WaitingAt(now) {
			r.Waiting = append(r.Waiting, task)
		}
		if task.OverdueAt(now) {
			r.Overdue = append(r.Overdue, task)
		}
		if task.Project == "" {
			continue
		}
		if _, seen := hasNext[task.Project]; !seen {
			r.Projects = append(r.Projects, task.Project)
		}
		hasNext[task.Project] = hasNext[task.Project] || (!task.Blocked() && !task.WaitingAt(now))
	}
	slices.Sort(r.Projects)
	for _, p := range r.Projects {
		if !hasNext[p] {
			r.ProjectsWithoutNextActions = append(r.ProjectsWithoutNextActions, p)
		}
	}

	if r.StalledProjects, err = t.stalled(ctx, r.Projects, now); err != nil {
		return Review{}, err
	}

	total := 0
	for _, task := range recurring {
		h := habitOf(task)
		r.Habits = append(r.Habits, h)
		total += h.CompletionRate
		if h.Broken() {
			r.HabitsWithBrokenStreaks = append(r.HabitsWithBrokenStreaks, h.Description)
		}
		if h.Strong() {
			r.StrongHabits = append(r.StrongHabits, h.Description)
		}
	}
	if len(r.Habits) > 0 {
		r.HabitAverage = (total*2 + len(r.Habits)) / (2 * len(r.Habits))
	}

	r.Metadata = Metadata{
		Total:      len(pending),
		Actionable: len(pending) - len(r.Waiting),
		Waiting:    len(r.Waiting),
		Completed:  len(completed),
	}
	r.Insights = r.insights()

	t.log.Info().Ctx(ctx).
		Int("completed", len(completed)).
		Int("inbox", len(r.Inbox)).
		Int("stalled", len(r.StalledProjects)).
		Msg("weekly review")
	return r, nil
}

// stalled exports each project concurrently and returns, sorted, those whose
// latest activity is at least StaleDays old.
func (t *Tasks) stalled(ctx context.Context, projects []string, now time.Time) ([]string, error) {
	last := make([]time.Time, len(projects))
	errs := make([]error, len(projects))

	err := t.pool.Each(ctx, len(projects), func(i int) {
		tasks, err := t.export(ctx, "project:"+projects[i])
		if err != nil {
			errs[i] = err
			return
		}
		for _, task := range tasks {
			if a := task.lastActivity(); a.After(last[i]) {
				last[i] = a
			}
		}
	})
	if err != nil {
		return nil, err
	}

	threshold := time.Duration(t.cfg.StaleDays) * 24 * time.Hour
	stalled := []string{}
	for i, p := range projects {
		if errs[i] != nil {
			return nil, fmt.Errorf("project %s: %w", p, errs[i])
		}
		if !last[i].IsZero() && now.Sub(last[i]) >= threshold {
			stalled = append(stalled, p)
		}
	}
	return stalled, nil
}

func (r Review) insights() Insights {
	in := Insights{
		Summary: fmt.Sprintf("Weekly Review: %d completed, %d inbox, %d overdue, %d active projects, %d habits (%d%% avg)",
			len(r.CompletedThisWeek), len(r.Inbox), len(r.Overdue), len(r.Projects), len(r.Habits), r.HabitAverage),
		Recommendations: []string{},
	}
	add := func(format string, args ...any) {
		in.Recommendations = append(in.Recommendations, fmt.Sprintf(format, args...))
	}

	if n := len(r.Inbox); n > 0 {
		add("Process %d inbox items", n)
	}
	if n := len(r.Overdue); n > 0 {
		add("Review %d overdue tasks", n)
	}
	if len(r.ProjectsWithoutNextActions) > 0 {
		add("Define next actions for: %s", strings.Join(r.ProjectsWithoutNextActions, ", "))
	}
	if len(r.StalledProjects) > 0 {
		add("Review stalled projects: %s", strings.Join(r.StalledProjects, ", "))
	}
	if n := len(r.CompletedThisWeek); n > 0 {
		add("Celebrate %d completed tasks!", n)
	}
	if broken := r.HabitsWithBrokenStreaks; len(broken) > 0 {
		names := strings.Join(broken[:min(3, len(broken))], ", ")
		if len(broken) > 3 {
			names += ", ..."
		}
		add("%d habits need attention: %s", len(broken), names)
	}
	if n := len(r.StrongHabits); n > 0 {
		add("%d strong habits maintained", n)
	}
	if len(r.Habits) > 0 && r.HabitAverage < 50 {
		add("Overall habit completion low (%d%%) - review recurring tasks", r.HabitAverage)
	}
	return in
}
