package modal

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle status of an attention item.
type Status uint8

const (
	// StatusWaiting means surfaced but not yet addressed. New items start here.
	StatusWaiting Status = iota
	// StatusHot means the item is actively being worked.
	StatusHot
	// StatusHandled means the item was resolved this session.
	StatusHandled
)

var statusNames = [...]string{
	StatusWaiting: "waiting",
	StatusHot:     "hot",
	StatusHandled: "handled",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

// ParseStatus converts a user supplied status name into a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hot":
		return StatusHot, nil
	case "waiting":
		return StatusWaiting, nil
	case "handled":
		return StatusHandled, nil
	}
	return StatusWaiting, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Statuses returns every status, hottest first.
func Statuses() []Status {
	return []Status{StatusHot, StatusWaiting, StatusHandled}
}

// StatusFilter selects attention items by status. The zero value matches
// every item.
type StatusFilter struct {
	status *Status
}

// AllStatuses matches every attention item.
var AllStatuses = StatusFilter{}

// onlyStatus matches items in the given status.
func onlyStatus(s Status) StatusFilter {
	return StatusFilter{status: &s}
}

// ParseStatusFilter accepts a status name, "all", or the empty string.
func ParseStatusFilter(s string) (StatusFilter, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" || trimmed == "all" {
		return AllStatuses, nil
	}
	st, err := ParseStatus(trimmed)
	if err != nil {
		return AllStatuses, err
	}
	return onlyStatus(st), nil
}

// Matches reports whether the item passes the filter.
func (f StatusFilter) Matches(item AttentionItem) bool {
	return f.status == nil || *f.status == item.Status
}

func (f StatusFilter) String() string {
	if f.status == nil {
		return "all"
	}
	return f.status.String()
}

// AttentionItem is a unit of tracked work in progress.
type AttentionItem struct {
	ID          string
	Description string
	Status      Status
	SurfacedAt  time.Time
	UpdatedAt   time.Time
	// Notes is carried for display but no operation writes it yet.
	Notes *string
}

// Counts is the number of attention items per status.
type Counts struct {
	Hot     int
	Waiting int
	Handled int
}

func (c *Counts) add(s Status) {
	switch s {
	case StatusHot:
		c.Hot++
	case StatusWaiting:
		c.Waiting++
	case StatusHandled:
		c.Handled++
	}
}
