package gtd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingA(desc string) string {
	return export(`{"id":1,"uuid":"` + uuidA + `","description":"` + desc + `","status":"pending","urgency":2}`)
}

func TestAdd(t *testing.T) {
	tasks, rec, _ := newTestTasks(t, map[string][]string{
		"add project:home priority:H +errand due:tomorrow -- Buy milk": {"Created task " + uuidA + ".\n"},
		uuidA + " export":                 {pendingA("Buy milk")},
		uuidA + " annotate -- whole milk": {""},
	})

	task, err := tasks.Add(context.Background(), NewTask{
		Description: "  Buy milk ",
		Project:     "home",
		Priority:    "high",
		Tags:        []string{"+errand", " "},
		Due:         "tomorrow",
		Annotations: []string{"whole milk", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, uuidA, task.UUID)

	assert.Equal(t, []string{
		"add project:home priority:H +errand due:tomorrow -- Buy milk",
		uuidA + " export",
		uuidA + " export",
		uuidA + " annotate -- whole milk",
		uuidA + " export",
	}, keys(rec))
}

func TestAdd_CreatedByID(t *testing.T) {
	tasks, _, _ := newTestTasks(t, map[string][]string{
		"add energy:L depends:" + uuidB + " -- Read +draft": {"Created task 5.\n"},
		"5 export": {pendingA("Read +draft")},
	})

	task, err := tasks.Add(context.Background(), NewTask{
		Description: "Read +draft",
		Energy:      "low",
		Depends:     []string{uuidB},
	})
	require.NoError(t, err)
	assert.Equal(t, "Read +draft", task.Description)
}

func TestAdd_NoTaskReported(t *testing.T) {
	tasks, _, _ := newTestTasks(t, map[string][]string{
		"add -- Stretch": {"Nothing to see here.\n"},
	})

	_, err := tasks.Add(context.Background(), NewTask{Description: "Stretch"})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestAdd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   NewTask
		want error
	}{
		{name: "blank description", in: NewTask{Description: " "}, want: ErrMissingArg},
		{name: "bad priority", in: NewTask{Description: "x", Priority: "urgent"}, want: ErrInvalidValue},
		{name: "bad energy", in: NewTask{Description: "x", Energy: "9"}, want: ErrInvalidValue},
		{name: "tag with space", in: NewTask{Description: "x", Tags: []string{"two words"}}, want: ErrInvalidValue},
		{name: "bad dependency", in: NewTask{Description: "x", Depends: []string{"12"}}, want: ErrInvalidUUID},
		{name: "bad parent", in: NewTask{Description: "x", Parent: "root"}, want: ErrInvalidUUID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, rec, _ := newTestTasks(t, nil)

			_, err := tasks.Add(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, rec.Commands)
		})
	}
}

func TestModify(t *testing.T) {
	modify := uuidA + " modify description:Call Bob project:work +next -in depends:" + uuidB + ",-" + uuidC + " due:"
	tasks, rec, _ := newTestTasks(t, map[string][]string{
		uuidA + " export": {pendingA("Call someone"), pendingA("Call Bob")},
		modify:            {""},
	})

	task, err := tasks.Modify(context.Background(), uuidA, Changes{
		Description:   "Call Bob",
		Project:       "work",
		AddTags:       []string{"next"},
		RemoveTags:    []string{"-in"},
		AddDepends:    []string{uuidB},
		RemoveDepends: []string{uuidC},
		Clear:         []string{"Due"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Call Bob", task.Description)
	assert.Equal(t, []string{uuidA + " export", modify, uuidA + " export"}, keys(rec))
}

func TestModify_NoChanges(t *testing.T) {
	tasks, rec, _ := newTestTasks(t, map[string][]string{
		uuidA + " export": {pendingA("Same")},
	})

	task, err := tasks.Modify(context.Background(), uuidA, Changes{})
	require.NoError(t, err)
	assert.Equal(t, "Same", task.Description)
	assert.Equal(t, []string{uuidA + " export"}, keys(rec))
}

func TestModify_Invalid(t *testing.T) {
	tests := []struct {
		name string
		c    Changes
	}{
		{name: "status", c: Changes{Status: "done"}},
		{name: "clear description", c: Changes{Clear: []string{"description"}}},
		{name: "priority", c: Changes{Priority: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, rec, _ := newTestTasks(t, nil)

			_, err := tasks.Modify(context.Background(), uuidA, tt.c)
			require.ErrorIs(t, err, ErrInvalidValue)
			assert.Empty(t, rec.Commands)
		})
	}
}

func TestDone(t *testing.T) {
	completed := export(`{"uuid":"` + uuidA + `","description":"Ship","status":"completed","end":"20260107T110000Z"}`)

	t.Run("completes pending task", func(t *testing.T) {
		tasks, rec, _ := newTestTasks(t, map[string][]string{
			uuidA + " export": {pendingA("Ship"), completed},
			uuidA + " done":   {""},
		})

		task, err := tasks.Done(context.Background(), uuidA)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, task.Status)
		assert.Equal(t, []string{uuidA + " export", uuidA + " done", uuidA + " export"}, keys(rec))
	})

	t.Run("already completed", func(t *testing.T) {
		tasks, rec, _ := newTestTasks(t, map[string][]string{
			uuidA + " export": {completed},
		})

		task, err := tasks.Done(context.Background(), uuidA)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, task.Status)
		assert.Len(t, rec.Commands, 1)
	})

	t.Run("still pending afterwards", func(t *testing.T) {
		tasks, _, _ := newTestTasks(t, map[string][]string{
			uuidA + " export": {pendingA("Ship")},
			uuidA + " done":   {""},
		})

		_, err := tasks.Done(context.Background(), uuidA)
		require.ErrorIs(t, err, ErrNotCompleted)
	})
}

func TestTaskCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Tasks) (Task, error)
		key  string
	}{
		{
			name: "delete",
			run:  func(s *Tasks) (Task, error) { return s.Delete(context.Background(), uuidA) },
			key:  uuidA + " delete",
		},
		{
			name: "start",
			run:  func(s *Tasks) (Task, error) { return s.Start(context.Background(), uuidA) },
			key:  uuidA + " start",
		},
		{
			name: "stop",
			run:  func(s *Tasks) (Task, error) { return s.Stop(context.Background(), uuidA) },
			key:  uuidA + " stop",
		},
		{
			name: "annotate",
			run:  func(s *Tasks) (Task, error) { return s.Annotate(context.Background(), uuidA, " -- call back ") },
			key:  uuidA + " annotate -- -- call back",
		},
		{
			name: "denotate",
			run:  func(s *Tasks) (Task, error) { return s.Denotate(context.Background(), uuidA, "call back") },
			key:  uuidA + " denotate -- call back",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, rec, _ := newTestTasks(t, map[string][]string{
				uuidA + " export": {pendingA("Task")},
				tt.key:            {""},
			})

			_, err := tt.run(tasks)
			require.NoError(t, err)
			assert.Equal(t, []string{uuidA + " export", tt.key, uuidA + " export"}, keys(rec))
		})
	}
}

func TestTaskCommands_MissingTask(t *testing.T) {
	tasks, rec, _ := newTestTasks(t, map[string][]string{
		uuidA + " export": {"[]"},
	})

	_, err := tasks.Delete(context.Background(), uuidA)
	require.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, []string{uuidA + " export"}, keys(rec))
}

func TestAnnotate_Blank(t *testing.T) {
	tasks, rec, _ := newTestTasks(t, nil)

	_, err := tasks.Annotate(context.Background(), uuidA, "  ")
	require.ErrorIs(t, err, ErrMissingArg)
	assert.Empty(t, rec.Commands)
}
