package modal

import (
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// StatusSnapshot is a consistent view of the tracker taken under one read
// lock.
type StatusSnapshot struct {
	Mode      Mode
	EnteredAt time.Time
	Duration  time.Duration
	Context   *string
	Counts    Counts
}

// Tracker guards a State with a readers-writer lock so tool handlers can
// share it. Every method holds the lock for a single in-memory step and
// returns copies, never references into the guarded state.
type Tracker struct {
	mu    sync.RWMutex
	state *State
}

// NewTracker returns a tracker holding a fresh state.
func NewTracker(clock clockwork.Clock) *Tracker {
	return &Tracker{state: NewState(clock)}
}

// EnterMode transitions to m and returns the mode that was active before.
func (t *Tracker) EnterMode(m Mode) Mode {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.state.CurrentMode
	t.state.EnterMode(m)
	return prev
}

// ExitMode returns to ModeDefault. When already in the default mode nothing
// happens and changed is false.
func (t *Tracker) ExitMode() (prev Mode, changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev = t.state.CurrentMode
	if prev == ModeDefault {
		return prev, false
	}
	t.state.EnterMode(ModeDefault)
	return prev, true
}

// SetContext replaces the active context and returns what was stored.
func (t *Tracker) SetContext(text string) *string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return copyString(t.state.SetContext(text))
}

// Context returns the active context, or nil.
func (t *Tracker) Context() *string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return copyString(t.state.ActiveContext)
}

// AddAttention adds a waiting item to the attention stack.
func (t *Tracker) AddAttention(id, description string) (AttentionItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.AddAttention(id, description)
}

// UpdateAttention changes the status of an existing item.
func (t *Tracker) UpdateAttention(id string, status Status) (AttentionItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.SetStatus(id, status)
}

// ListAttention returns the items matching filter in insertion order.
func (t *Tracker) ListAttention(filter StatusFilter) []AttentionItem {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state.ByStatus(filter)
}

// Counts returns the number of items per status.
func (t *Tracker) Counts() Counts {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state.Counts()
}

// History returns a copy of the mode transition log.
func (t *Tracker) History() []ModeTransition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.state.History)
}

// Status returns the current mode, its duration, the context and the
// attention counts as one consistent snapshot.
func (t *Tracker) Status() StatusSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return StatusSnapshot{
		Mode:      t.state.CurrentMode,
		EnteredAt: t.state.ModeEnteredAt,
		Duration:  t.state.Duration(),
		Context:   copyString(t.state.ActiveContext),
		Counts:    t.state.Counts(),
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
