package pim

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

// listFormat shows the source calendar in front of every event.
const listFormat = "[{calendar}] {start-end-time-style} {title}"

// Calendar wraps khal.
type Calendar struct {
	khal        string
	calendar    string
	defaultDays int
	exec        executil.Executor
	clock       clockwork.Clock
}

// NewCalendar creates a Calendar. The clock decides what "today" is.
func NewCalendar(cfg config.PIMConfig, exec executil.Executor, clock clockwork.Clock) *Calendar {
	days := cfg.DefaultDays
	if days < 1 {
		days = 7
	}
	return &Calendar{
		khal:        cfg.Khal,
		calendar:    cfg.Calendar,
		defaultDays: days,
		exec:        exec,
		clock:       clock,
	}
}

// ListEvents lists events from all calendars starting at start for the
// given number of days. An empty start means today; days < 1 means the
// configured default.
func (c *Calendar) ListEvents(ctx context.Context, start string, days int) (string, error) {
	start = strings.TrimSpace(start)
	if start == "" {
		start = c.clock.Now().Format(dateLayout)
	} else if err := validateDate(start); err != nil {
		return "", err
	}
	if days < 1 {
		days = c.defaultDays
	}

	out, err := c.exec.Run(ctx, c.khal, "list", "-f", listFormat, start, strconv.Itoa(days)+"d")
	if err != nil {
		return "", fmt.Errorf("list events: %w", err)
	}

	if strings.TrimSpace(string(out)) == "" {
		return fmt.Sprintf("No events found from %s for %d days.", start, days), nil
	}
	return fmt.Sprintf("Events from %s (%d days):\n\n%s", start, days, out), nil
}

// EventInput describes an event to create. Without StartTime the event is
// all day; without EndTime a timed event lasts one hour.
type EventInput struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Description string
}

// EventArgs returns the `khal new` arguments for in.
func (c *Calendar) EventArgs(in EventInput) []string {
	args := []string{"new", "-a", c.calendar}
	if in.Location != "" {
		args = append(args, "--location", in.Location)
	}

	if in.StartTime != "" {
		args = append(args, in.Date+" "+in.StartTime)
		if in.EndTime != "" {
			args = append(args, in.EndTime)
		} else {
			args = append(args, "1h")
		}
	} else {
		args = append(args, in.Date)
	}

	args = append(args, in.Title)
	if in.Description != "" {
		args = append(args, "::", in.Description)
	}
	return args
}

// CreateEvent writes a new event to the configured calendar.
func (c *Calendar) CreateEvent(ctx context.Context, in EventInput) (string, error) {
	var err error
	if in.Title, err = required("title", in.Title); err != nil {
		return "", err
	}
	if in.Date, err = required("date", in.Date); err != nil {
		return "", err
	}
	if err := validateDate(in.Date); err != nil {
		return "", err
	}
	for _, t := range []string{in.StartTime, in.EndTime} {
		if t == "" {
			continue
		}
		if err := validateTime(t); err != nil {
			return "", err
		}
	}
	if in.StartTime == "" && in.EndTime != "" {
		return "", fmt.Errorf("%w: start_time is required when end_time is set", ErrMissingArg)
	}

	out, err := c.exec.Run(ctx, c.khal, c.EventArgs(in)...)
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}

	detail := strings.TrimSpace(string(out))
	if detail == "" {
		detail = "Event created successfully."
	}
	return fmt.Sprintf("Created event '%s' on %s.\n%s", in.Title, in.Date, detail), nil
}
