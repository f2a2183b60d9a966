package modal

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)

func newTestState() (*State, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(t0)
	return NewState(clock), clock
}

// assertHistoryInvariant checks the open-entry rules on the transition log.
func assertHistoryInvariant(t *testing.T, s *State) {
	t.Helper()

	require.NotEmpty(t, s.History)

	open := 0
	for i, tr := range s.History {
		if tr.ExitedAt == nil {
			open++
			assert.Equal(t, len(s.History)-1, i, "open entry must be last")
		}
	}
	assert.Equal(t, 1, open, "exactly one open entry")

	last := s.History[len(s.History)-1]
	assert.Equal(t, s.CurrentMode, last.Mode)
	assert.Equal(t, s.ModeEnteredAt, last.EnteredAt)
}

func TestNewState(t *testing.T) {
	s, _ := newTestState()

	assert.Equal(t, ModeDefault, s.CurrentMode)
	assert.Equal(t, t0, s.ModeEnteredAt)
	assert.Nil(t, s.ActiveContext)
	assert.Empty(t, s.Attention)
	require.Len(t, s.History, 1)
	assert.Nil(t, s.History[0].ExitedAt)
	assertHistoryInvariant(t, s)
}

func TestState_EnterMode(t *testing.T) {
	s, clock := newTestState()

	clock.Advance(time.Minute)
	s.EnterMode(ModeOps)

	assert.Equal(t, ModeOps, s.CurrentMode)
	require.Len(t, s.History, 2)
	require.NotNil(t, s.History[0].ExitedAt)
	assert.Equal(t, t0.Add(time.Minute), *s.History[0].ExitedAt)
	assert.Equal(t, t0.Add(time.Minute), s.History[1].EnteredAt)
	assertHistoryInvariant(t, s)
}

func TestState_EnterMode_SameModeStartsNewInterval(t *testing.T) {
	s, clock := newTestState()

	clock.Advance(5 * time.Second)
	s.EnterMode(ModeDefault)

	require.Len(t, s.History, 2)
	assert.Equal(t, t0.Add(5*time.Second), s.ModeEnteredAt)
	assert.Equal(t, time.Duration(0), s.Duration())
	assertHistoryInvariant(t, s)
}

func TestState_EnterMode_InvariantHoldsForAnySequence(t *testing.T) {
	s, clock := newTestState()

	seq := []Mode{ModeOps, ModeOps, ModeCeremonial, ModeDefault, ModeCeremonial, ModeOps, ModeDefault}
	for i, m := range seq {
		clock.Advance(time.Second)
		s.EnterMode(m)
		assert.Len(t, s.History, i+2)
		assertHistoryInvariant(t, s)
	}
}

func TestState_ModeCycle(t *testing.T) {
	s, clock := newTestState()

	clock.Advance(time.Second)
	s.EnterMode(ModeOps)
	clock.Advance(time.Second)
	s.EnterMode(ModeCeremonial)
	clock.Advance(time.Second)
	s.EnterMode(ModeDefault)

	require.Len(t, s.History, 4)
	assert.Equal(t, ModeDefault, s.CurrentMode)
	for _, tr := range s.History[:3] {
		assert.NotNil(t, tr.ExitedAt)
	}
	assert.Nil(t, s.History[3].ExitedAt)
	assert.Equal(t, []Mode{ModeDefault, ModeOps, ModeCeremonial, ModeDefault}, modesOf(s.History))
}

func TestState_SetContext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *string
	}{
		{name: "text", input: "Working on: health insurance", want: ptr("Working on: health insurance")},
		{name: "keeps surrounding whitespace", input: " taxes ", want: ptr(" taxes ")},
		{name: "empty clears", input: "", want: nil},
		{name: "whitespace clears", input: " \t\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestState()
			s.SetContext("previous")

			got := s.SetContext(tt.input)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, s.ActiveContext)
		})
	}
}

func TestState_AddAttention(t *testing.T) {
	s, _ := newTestState()

	item, err := s.AddAttention("ins-1", "Follow up on insurance")
	require.NoError(t, err)

	assert.Equal(t, "ins-1", item.ID)
	assert.Equal(t, StatusWaiting, item.Status)
	assert.Equal(t, t0, item.SurfacedAt)
	assert.Equal(t, t0, item.UpdatedAt)
	assert.Nil(t, item.Notes)
	assert.Equal(t, Counts{Waiting: 1}, s.Counts())
}

func TestState_AddAttention_DuplicateID(t *testing.T) {
	s, _ := newTestState()

	_, err := s.AddAttention("x", "first")
	require.NoError(t, err)
	_, err = s.SetStatus("x", StatusHandled)
	require.NoError(t, err)

	_, err = s.AddAttention("x", "second")
	require.ErrorIs(t, err, ErrAttentionExists)

	require.Len(t, s.Attention, 1)
	assert.Equal(t, "first", s.Attention[0].Description)
}

func TestState_AttentionLifecycle(t *testing.T) {
	s, clock := newTestState()

	_, err := s.AddAttention("ins-1", "Follow up on insurance")
	require.NoError(t, err)
	assert.Equal(t, Counts{Hot: 0, Waiting: 1, Handled: 0}, s.Counts())

	clock.Advance(time.Second)
	hot, err := s.SetStatus("ins-1", StatusHot)
	require.NoError(t, err)
	assert.Equal(t, Counts{Hot: 1, Waiting: 0, Handled: 0}, s.Counts())

	clock.Advance(time.Second)
	handled, err := s.SetStatus("ins-1", StatusHandled)
	require.NoError(t, err)
	assert.Equal(t, Counts{Hot: 0, Waiting: 0, Handled: 1}, s.Counts())

	assert.True(t, handled.UpdatedAt.After(hot.UpdatedAt))
	assert.Equal(t, t0, hot.SurfacedAt)
	assert.Equal(t, t0, handled.SurfacedAt)
}

func TestState_SetStatus_SameStatusRefreshesUpdatedAt(t *testing.T) {
	s, clock := newTestState()
	_, err := s.AddAttention("a", "a")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	item, err := s.SetStatus("a", StatusWaiting)
	require.NoError(t, err)

	assert.Equal(t, StatusWaiting, item.Status)
	assert.Equal(t, t0.Add(time.Minute), item.UpdatedAt)
}

func TestState_SetStatus_HandledCanReopen(t *testing.T) {
	s, _ := newTestState()
	_, err := s.AddAttention("a", "a")
	require.NoError(t, err)

	_, err = s.SetStatus("a", StatusHandled)
	require.NoError(t, err)
	item, err := s.SetStatus("a", StatusHot)
	require.NoError(t, err)

	assert.Equal(t, StatusHot, item.Status)
}

func TestState_SetStatus_NotFound(t *testing.T) {
	s, _ := newTestState()
	_, err := s.AddAttention("a", "a")
	require.NoError(t, err)

	_, err = s.SetStatus("missing-id", StatusHot)
	require.ErrorIs(t, err, ErrAttentionNotFound)
	assert.Equal(t, Counts{Waiting: 1}, s.Counts())
}

func TestState_ByStatus_PreservesInsertionOrder(t *testing.T) {
	s, _ := newTestState()
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := s.AddAttention(id, "item "+id)
		require.NoError(t, err)
	}
	_, err := s.SetStatus("c", StatusHot)
	require.NoError(t, err)
	_, err = s.SetStatus("a", StatusHot)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, idsOf(s.ByStatus(onlyStatus(StatusHot))))
	assert.Equal(t, []string{"b", "d"}, idsOf(s.ByStatus(onlyStatus(StatusWaiting))))
	assert.Empty(t, s.ByStatus(onlyStatus(StatusHandled)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, idsOf(s.ByStatus(AllStatuses)))
}

func TestState_CountsSumToStackSize(t *testing.T) {
	s, _ := newTestState()

	ops := []struct {
		id     string
		status *Status
	}{
		{id: "a"},
		{id: "b"},
		{id: "a", status: ptr(StatusHot)},
		{id: "c"},
		{id: "b", status: ptr(StatusHandled)},
		{id: "a", status: ptr(StatusHandled)},
		{id: "c", status: ptr(StatusHot)},
		{id: "a", status: ptr(StatusWaiting)},
		{id: "zzz", status: ptr(StatusHot)},
	}

	for _, op := range ops {
		if op.status == nil {
			_, _ = s.AddAttention(op.id, op.id)
		} else {
			_, _ = s.SetStatus(op.id, *op.status)
		}
		c := s.Counts()
		assert.Equal(t, len(s.Attention), c.Hot+c.Waiting+c.Handled)
	}
}

func TestState_Duration(t *testing.T) {
	s, clock := newTestState()

	clock.Advance(90 * time.Second)
	assert.Equal(t, 90*time.Second, s.Duration())

	clock.Advance(10 * time.Second)
	assert.Equal(t, 100*time.Second, s.Duration(), "duration is recomputed on each call")
}

func TestState_UpdatedAtNeverBeforeSurfacedAt(t *testing.T) {
	s, clock := newTestState()
	_, err := s.AddAttention("a", "a")
	require.NoError(t, err)

	for _, st := range []Status{StatusHot, StatusWaiting, StatusHandled} {
		clock.Advance(time.Millisecond)
		_, err := s.SetStatus("a", st)
		require.NoError(t, err)
	}

	require.Len(t, s.Attention, 1)
	item := s.Attention[0]
	assert.False(t, item.UpdatedAt.Before(item.SurfacedAt))
}

func ptr[T any](v T) *T { return &v }

func idsOf(items []AttentionItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func modesOf(history []ModeTransition) []Mode {
	modes := make([]Mode, 0, len(history))
	for _, tr := range history {
		modes = append(modes, tr.Mode)
	}
	return modes
}
