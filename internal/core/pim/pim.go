// Package pim wraps the personal information tools aiandi drives: khal for
// calendars, khard and vdirsyncer address books for contacts, notmuch for
// reading mail and himalaya for sending it.
//
// Every method returns the text an assistant should see. Errors are returned
// only when the underlying tool could not be run or the input is invalid.
package pim

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
	ErrMissingArg  = errors.New("missing required argument")
)

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return nil
}

func validateTime(s string) error {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return nil
}

func required(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArg, name)
	}
	return value, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
