package pim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

func testPIMConfig(t *testing.T) config.PIMConfig {
	return config.PIMConfig{
		Khal:        "khal",
		Khard:       "khard",
		Notmuch:     "notmuch",
		Himalaya:    "/home/u/.local/bin/himalaya",
		Calendar:    "personal",
		ContactsDir: t.TempDir(),
		SearchLimit: 20,
		DefaultDays: 7,
	}
}

func newTestCalendar(t *testing.T, rec *executil.RecordingExecutor) *Calendar {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 7, 9, 30, 0, 0, time.Local))
	return NewCalendar(testPIMConfig(t), rec, clock)
}

func TestListEvents_Defaults(t *testing.T) {
	rec := &executil.RecordingExecutor{Outputs: map[string][]byte{
		"khal": []byte("[personal] 10:00-11:00 Standup\n"),
	}}
	cal := newTestCalendar(t, rec)

	got, err := cal.ListEvents(context.Background(), "", 0)
	require.NoError(t, err)

	assert.Equal(t, "Events from 2026-01-07 (7 days):\n\n[personal] 10:00-11:00 Standup\n", got)
	last, _ := rec.Last()
	assert.Equal(t, []string{"list", "-f", listFormat, "2026-01-07", "7d"}, last.Args)
}

func TestListEvents_Empty(t *testing.T) {
	rec := &executil.RecordingExecutor{Outputs: map[string][]byte{"khal": []byte("  \n")}}
	cal := newTestCalendar(t, rec)

	got, err := cal.ListEvents(context.Background(), "2026-02-01", 3)
	require.NoError(t, err)
	assert.Equal(t, "No events found from 2026-02-01 for 3 days.", got)
}

func TestListEvents_InvalidDate(t *testing.T) {
	rec := &executil.RecordingExecutor{}
	cal := newTestCalendar(t, rec)

	_, err := cal.ListEvents(context.Background(), "next tuesday", 3)
	require.ErrorIs(t, err, ErrInvalidDate)
	assert.Empty(t, rec.Commands)
}

func TestListEvents_ToolError(t *testing.T) {
	rec := &executil.RecordingExecutor{Errors: map[string]error{"khal": errors.New("boom")}}
	cal := newTestCalendar(t, rec)

	_, err := cal.ListEvents(context.Background(), "", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list events")
}

func TestEventArgs(t *testing.T) {
	cal := newTestCalendar(t, &executil.RecordingExecutor{})

	tests := []struct {
		name string
		in   EventInput
		want []string
	}{
		{
			name: "all day",
			in:   EventInput{Title: "Holiday", Date: "2026-01-10"},
			want: []string{"new", "-a", "personal", "2026-01-10", "Holiday"},
		},
		{
			name: "timed default duration",
			in:   EventInput{Title: "Call", Date: "2026-01-10", StartTime: "14:00"},
			want: []string{"new", "-a", "personal", "2026-01-10 14:00", "1h", "Call"},
		},
		{
			name: "timed with end, location and description",
			in: EventInput{
				Title: "Dentist", Date: "2026-01-10", StartTime: "09:00", EndTime: "09:45",
				Location: "Main St", Description: "bring card",
			},
			want: []string{"new", "-a", "personal", "--location", "Main St", "2026-01-10 09:00", "09:45", "Dentist", "::", "bring card"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.EventArgs(tt.in))
		})
	}
}

func TestCreateEvent(t *testing.T) {
	rec := &executil.RecordingExecutor{}
	cal := newTestCalendar(t, rec)

	got, err := cal.CreateEvent(context.Background(), EventInput{Title: "Call", Date: "2026-01-10", StartTime: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, "Created event 'Call' on 2026-01-10.\nEvent created successfully.", got)
	require.Len(t, rec.Commands, 1)
	assert.Equal(t, "khal", rec.Commands[0].Cmd)
}

func TestCreateEvent_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   EventInput
		want error
	}{
		{name: "missing title", in: EventInput{Date: "2026-01-10"}, want: ErrMissingArg},
		{name: "missing date", in: EventInput{Title: "x"}, want: ErrMissingArg},
		{name: "bad date", in: EventInput{Title: "x", Date: "10/01/2026"}, want: ErrInvalidDate},
		{name: "bad start", in: EventInput{Title: "x", Date: "2026-01-10", StartTime: "2pm"}, want: ErrInvalidTime},
		{name: "end without start", in: EventInput{Title: "x", Date: "2026-01-10", EndTime: "10:00"}, want: ErrMissingArg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &executil.RecordingExecutor{}
			_, err := newTestCalendar(t, rec).CreateEvent(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, rec.Commands)
		})
	}
}
