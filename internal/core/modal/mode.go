package modal

import (
	"fmt"
	"strings"
)

// Mode is the operating context the assistant session is in.
type Mode uint8

const (
	// ModeDefault is technical collaboration (coding).
	ModeDefault Mode = iota
	// ModeOps is the trusted steward mode for life logistics.
	ModeOps
	// ModeCeremonial is the full ritual container.
	ModeCeremonial
)

var modeNames = [...]string{
	ModeDefault:    "default",
	ModeOps:        "ops",
	ModeCeremonial: "ceremonial",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode converts a user supplied mode name into a Mode. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return ModeDefault, nil
	case "ops":
		return ModeOps, nil
	case "ceremonial":
		return ModeCeremonial, nil
	}
	return ModeDefault, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeDefault, ModeOps, ModeCeremonial}
}
