package gtd

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskJSON(uuid, desc string, extra string) string {
	s := fmt.Sprintf(`{"uuid":%q,"description":%q,"status":"pending"`, uuid, desc)
	if extra != "" {
		s += "," + extra
	}
	return s + "}"
}

func descriptions(tasks []Task) []string {
	out := []string{}
	for _, task := range tasks {
		out = append(out, task.Description)
	}
	return out
}

func TestList(t *testing.T) {
	listing := export(
		taskJSON(uuidA, "low", `"urgency":1`),
		taskJSON(uuidB, "high", `"urgency":9`),
		taskJSON(uuidC, "mid", `"urgency":5`),
	)

	t.Run("pending by default, most urgent first", func(t *testing.T) {
		tasks, _, _ := newTestTasks(t, map[string][]string{
			"status:pending project:home +next description.contains:call due.before:eow export": {listing},
		})

		got, err := tasks.List(context.Background(), Filter{
			Project:   "home",
			Tags:      []string{"next"},
			Contains:  "call",
			DueBefore: "eow",
			Limit:     2,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"high", "mid"}, descriptions(got))
	})

	t.Run("all statuses", func(t *testing.T) {
		tasks, _, _ := newTestTasks(t, map[string][]string{
			"modified.after:2026-01-01 export": {listing},
		})

		got, err := tasks.List(context.Background(), Filter{Status: "all", ModifiedAfter: "2026-01-01"})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("configured limit", func(t *testing.T) {
		tasks, _, _ := newTestTasks(t, map[string][]string{"status:completed export": {listing}})
		tasks.cfg.ListLimit = 1

		got, err := tasks.List(context.Background(), Filter{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, []string{"high"}, descriptions(got))
	})

	t.Run("unknown status", func(t *testing.T) {
		tasks, rec, _ := newTestTasks(t, nil)

		_, err := tasks.List(context.Background(), Filter{Status: "open"})
		require.ErrorIs(t, err, ErrInvalidValue)
		assert.Empty(t, rec.Commands)
	})
}

func TestNextActions(t *testing.T) {
	const later = `"wait":"20260110T000000Z"`
	listing := export(
		taskJSON(uuidA, "Draft proposal", `"urgency":12.34,"priority":"H","context":"office"`),
		taskJSON(uuidB, "Hear back from Ann", later+`,"urgency":20`),
		taskJSON(uuidC, "Deploy", `"depends":["`+uuidA+`"],"urgency":15`),
		taskJSON("dddddddd-4444-4444-8444-444444444444", "Water plants", `"urgency":1`),
	)

	tasks, _, _ := newTestTasks(t, map[string][]string{
		"status:pending -sdm export": {listing},
	})

	report, err := tasks.NextActions(context.Background(), NextActionsQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Draft proposal", "Water plants"}, descriptions(report.Tasks))
	assert.Equal(t, Metadata{Total: 4, Actionable: 2, Blocked: 1, Waiting: 1}, report.Metadata)
	assert.Equal(t, "Found 2 tasks: 2 actionable, 0 blocked, 0 waiting", report.Insights.Summary)
	assert.Equal(t, []string{
		`Start with "Draft proposal" (urgency: 12.3)`,
		"1 high priority tasks need attention",
	}, report.Insights.Recommendations)
	assert.Equal(t, []string{"1 tasks have no context set"}, report.Insights.Warnings)
	assert.Equal(t, map[string]ContextSummary{"office": {Count: 1, HighPriority: 1}}, report.Contexts)
}

func TestNextActions_Filters(t *testing.T) {
	listing := export(
		taskJSON(uuidA, "Quick call", `"complexity":5,"urgency":3`),
		taskJSON(uuidB, "Deep work", `"complexity":"90","urgency":8`),
		taskJSON(uuidC, "Urgent thing", `"urgency":11`),
	)
	tasks, _, _ := newTestTasks(t, map[string][]string{
		"status:pending -sdm context:home energy:H export": {listing},
	})

	report, err := tasks.NextActions(context.Background(), NextActionsQuery{
		Context:       "home",
		Energy:        "high",
		TimeAvailable: "15min",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Quick call"}, descriptions(report.Tasks))
}

func TestNextActions_IncludeBlocked(t *testing.T) {
	listing := export(taskJSON(uuidC, "Deploy", `"depends":"`+uuidA+`","urgency":15`))
	tasks, _, _ := newTestTasks(t, map[string][]string{"status:pending -sdm export": {listing}})

	report, err := tasks.NextActions(context.Background(), NextActionsQuery{IncludeBlocked: true, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"Deploy"}, descriptions(report.Tasks))
	assert.Equal(t, 1, report.Metadata.Blocked)
}

func TestNextActions_NothingActionable(t *testing.T) {
	listing := export(
		taskJSON(uuidB, "Hear back", `"wait":"20260110T000000Z"`),
		taskJSON(uuidC, "Deploy", `"depends":["`+uuidA+`"]`),
	)
	tasks, _, _ := newTestTasks(t, map[string][]string{"status:pending -sdm export": {listing}})

	report, err := tasks.NextActions(context.Background(), NextActionsQuery{})
	require.NoError(t, err)
	assert.Empty(t, report.Tasks)
	assert.NotNil(t, report.Tasks)
	assert.Equal(t, "No actionable tasks found", report.Insights.Summary)
	assert.Equal(t, []string{"1 tasks are blocked by dependencies", "1 tasks are waiting"}, report.Insights.Recommendations)
	assert.Nil(t, report.Contexts)
}

func TestNextActions_Invalid(t *testing.T) {
	tasks, rec, _ := newTestTasks(t, nil)

	_, err := tasks.NextActions(context.Background(), NextActionsQuery{Energy: "max"})
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = tasks.NextActions(context.Background(), NextActionsQuery{TimeAvailable: "3min"})
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Empty(t, rec.Commands)
}

func TestInbox(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		tasks, _, _ := newTestTasks(t, map[string][]string{"status:pending +in export": {"[\n]"}})

		report, err := tasks.Inbox(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Inbox is empty - great job!", report.Insights.Summary)
		assert.Equal(t, []string{"Your inbox is clear. Focus on next actions."}, report.Insights.Recommendations)
	})

	t.Run("items", func(t *testing.T) {
		listing := export(
			taskJSON(uuidA, "idea", `"tags":["in"],"due":"20260101T000000Z"`),
			taskJSON(uuidB, "receipt", `"tags":["in"]`),
		)
		tasks, _, _ := newTestTasks(t, map[string][]string{"status:pending +in export": {listing}})

		report, err := tasks.Inbox(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2 items in inbox need processing", report.Insights.Summary)
		assert.Equal(t, []string{
			"Process these inbox items: clarify, organize, or defer",
			"1 tasks are overdue",
		}, report.Insights.Recommendations)
		assert.Equal(t, Metadata{Total: 2, Actionable: 2}, report.Metadata)
	})
}

func TestWaitingFor(t *testing.T) {
	filter := "( status:pending or status:waiting ) export"
	listing := export(
		taskJSON(uuidA, "Invoice", `"wait":"20260110T000000Z","project":"biz","annotations":[{"description":"old"},{"description":"Waiting on accounting to send the signed invoice back to us"}]`),
		taskJSON(uuidB, "Parts", `"status":"waiting","wait":"20260120T000000Z"`),
		taskJSON(uuidC, "Now", `"wait":"20260101T000000Z"`),
	)

	tests := []struct {
		groupBy string
		groups  []string
	}{
		{groupBy: "", groups: []string{"Waiting on accounting to send the signed invoice b", "(waiting)"}},
		{groupBy: "project", groups: []string{"biz", "(no project)"}},
		{groupBy: "date", groups: []string{"2026-01-10", "2026-01-20"}},
	}

	for _, tt := range tests {
		t.Run("group by "+tt.groupBy, func(t *testing.T) {
			tasks, _, _ := newTestTasks(t, map[string][]string{filter: {listing}})

			report, err := tasks.WaitingFor(context.Background(), tt.groupBy)
			require.NoError(t, err)
			assert.Equal(t, []string{"Invoice", "Parts"}, descriptions(report.Tasks))
			assert.Equal(t, "2 tasks waiting", report.Insights.Summary)
			assert.Equal(t, "Review waiting items and follow up if needed", report.Insights.Recommendations[0])

			var groups []string
			for key := range report.Groups {
				groups = append(groups, key)
			}
			assert.ElementsMatch(t, tt.groups, groups)
		})
	}
}

func TestWaitingFor_Nothing(t *testing.T) {
	tasks, _, _ := newTestTasks(t, map[string][]string{"( status:pending or status:waiting ) export": {"[]"}})

	report, err := tasks.WaitingFor(context.Background(), "project")
	require.NoError(t, err)
	assert.Equal(t, "Nothing waiting - all tasks are actionable", report.Insights.Summary)

	_, err = tasks.WaitingFor(context.Background(), "person")
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestSomedayMaybe(t *testing.T) {
	listing := export(
		taskJSON(uuidA, "Learn cello", `"project":"music","modified":"20260101T000000Z","tags":["sdm"]`),
		taskJSON(uuidB, "Sail", `"modified":"20250101T000000Z","tags":["sdm"]`),
		taskJSON(uuidC, "Compose", `"project":"music","modified":"20260105T000000Z","tags":["sdm"]`),
	)
	tasks, _, _ := newTestTasks(t, map[string][]string{"status:pending +sdm export": {listing}})

	report, err := tasks.SomedayMaybe(context.Background(), "", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sail", "Compose", "Learn cello"}, descriptions(report.Tasks))
	assert.Equal(t, "3 someday/maybe items across 2 projects", report.Insights.Summary)
	assert.Equal(t, []string{
		"1 items not reviewed in 90+ days",
		"Review these during weekly review",
		"Consider promoting actionable items to active projects",
	}, report.Insights.Recommendations)
	assert.Empty(t, report.Insights.Warnings)
	assert.Len(t, report.Groups["music"], 2)
	assert.Len(t, report.Groups["no_project"], 1)
}

func TestSomedayMaybe_ProjectAndLimit(t *testing.T) {
	tasks, _, _ := newTestTasks(t, map[string][]string{"status:pending +sdm project:music export": {"[]"}})

	report, err := tasks.SomedayMaybe(context.Background(), "music", 3)
	require.NoError(t, err)
	assert.Equal(t, "0 someday/maybe items across 0 projects", report.Insights.Summary)
	assert.Equal(t, []string{"No someday/maybe items. Consider adding aspirational tasks."}, report.Insights.Recommendations)
}
