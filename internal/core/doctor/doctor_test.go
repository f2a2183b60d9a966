package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (c staticCheck) Name() string { return c.name }

func (c staticCheck) Run(context.Context) Result {
	return Result{Name: c.name, Items: c.items}
}

func TestRunAll_SetsStatusStr(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		staticCheck{name: "a", items: []CheckItem{{Label: "x", Status: StatusWarn}}},
		staticCheck{name: "b", items: []CheckItem{{Label: "y", Status: StatusPass}}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "warn", results[0].Items[0].StatusStr)
	assert.Equal(t, "pass", results[1].Items[0].StatusStr)
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Items: []CheckItem{{Status: StatusPass}, {Status: StatusPass}, {Status: StatusWarn}}},
		{Items: []CheckItem{{Status: StatusFail}}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
	assert.True(t, HasFailures(results))
	assert.False(t, HasFailures(results[:1]))
}

func TestCountFixable(t *testing.T) {
	results := []Result{{Items: []CheckItem{
		{Status: StatusWarn, Fixable: true},
		{Status: StatusPass, Fixable: true},
		{Status: StatusFail, Fixable: false},
		{Status: StatusFail, Fixable: true},
	}}}

	assert.Equal(t, 2, CountFixable(results))
}

func TestFormatText(t *testing.T) {
	results := []Result{{
		Name: "Commands",
		Items: []CheckItem{
			{Label: "task", Status: StatusPass, Detail: "3.1.0"},
			{Label: "opencode", Status: StatusFail, Detail: "not found on PATH"},
			{Label: "khal", Status: StatusWarn},
		},
	}}

	got := FormatText(results)

	assert.Contains(t, got, "Commands\n")
	assert.Contains(t, got, "  [pass] task: 3.1.0\n")
	assert.Contains(t, got, "  [fail] opencode: not found on PATH\n")
	assert.Contains(t, got, "  [warn] khal\n")
	assert.Contains(t, got, "1 passed, 1 warnings, 1 failed\n")
}
