// Package modal tracks the working memory of a mode session: the current
// mode, the active context, the attention stack, and the history of mode
// transitions.
//
// State is ephemeral. It lives for the lifetime of the process that owns it
// and is never persisted.
package modal

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// ModeTransition records one interval spent in a mode. ExitedAt is nil only
// for the current (last) transition.
type ModeTransition struct {
	Mode      Mode
	EnteredAt time.Time
	ExitedAt  *time.Time
}

// State is the aggregate root for a mode session. It is not safe for
// concurrent use; wrap it in a Tracker when it is shared.
type State struct {
	CurrentMode   Mode
	ModeEnteredAt time.Time
	ActiveContext *string
	Attention     []AttentionItem
	History       []ModeTransition

	clock clockwork.Clock
}

// NewState returns a state in ModeDefault with a single open history entry.
func NewState(clock clockwork.Clock) *State {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	now := clock.Now()
	return &State{
		CurrentMode:   ModeDefault,
		ModeEnteredAt: now,
		History: []ModeTransition{
			{Mode: ModeDefault, EnteredAt: now},
		},
		clock: clock,
	}
}

// EnterMode closes the open history entry and starts a new one. Entering the
// current mode again is valid and starts a fresh interval.
func (s *State) EnterMode(m Mode) {
	now := s.clock.Now()

	if n := len(s.History); n > 0 && s.History[n-1].ExitedAt == nil {
		s.History[n-1].ExitedAt = &now
	}

	s.CurrentMode = m
	s.ModeEnteredAt = now
	s.History = append(s.History, ModeTransition{Mode: m, EnteredAt: now})
}

// SetContext replaces the active context. Blank text clears it. The stored
// value is returned.
func (s *State) SetContext(text string) *string {
	if strings.TrimSpace(text) == "" {
		s.ActiveContext = nil
		return nil
	}
	s.ActiveContext = &text
	return s.ActiveContext
}

// AddAttention appends a waiting item. Ids must be unique across the whole
// stack, handled items included.
func (s *State) AddAttention(id, description string) (AttentionItem, error) {
	if s.index(id) >= 0 {
		return AttentionItem{}, fmt.Errorf("%w: %q", ErrAttentionExists, id)
	}

	now := s.clock.Now()
	item := AttentionItem{
		ID:          id,
		Description: description,
		Status:      StatusWaiting,
		SurfacedAt:  now,
		UpdatedAt:   now,
	}
	s.Attention = append(s.Attention, item)
	return item, nil
}

// SetStatus moves an item to any status, including the one it already has.
// UpdatedAt is refreshed on every call.
func (s *State) SetStatus(id string, status Status) (AttentionItem, error) {
	i := s.index(id)
	if i < 0 {
		return AttentionItem{}, fmt.Errorf("%w: %q", ErrAttentionNotFound, id)
	}

	s.Attention[i].Status = status
	s.Attention[i].UpdatedAt = s.clock.Now()
	return s.Attention[i], nil
}

// ByStatus returns matching items in insertion order.
func (s *State) ByStatus(filter StatusFilter) []AttentionItem {
	items := make([]AttentionItem, 0, len(s.Attention))
	for _, item := range s.Attention {
		if filter.Matches(item) {
			items = append(items, item)
		}
	}
	return items
}

// Counts tallies attention items by status.
func (s *State) Counts() Counts {
	var c Counts
	for _, item := range s.Attention {
		c.add(item.Status)
	}
	return c
}

// Duration is the time spent in the current mode so far.
func (s *State) Duration() time.Duration {
	return s.clock.Since(s.ModeEnteredAt)
}

func (s *State) index(id string) int {
	for i := range s.Attention {
		if s.Attention[i].ID == id {
			return i
		}
	}
	return -1
}
