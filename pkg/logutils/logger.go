// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// stderrIsTerminal reports whether stderr is attached to a terminal.
var stderrIsTerminal = func() bool { return term.IsTerminal(int(os.Stderr.Fd())) }

// New returns a logger at the given level (debug, info, warn, error, fatal).
//
// With a file, JSON lines are appended to it and the returned func closes
// it. Without one the logger writes to stderr, human readable when stderr is
// a terminal. Stdout belongs to the MCP transport and is never written.
func New(level string, file string) (zerolog.Logger, func(), error) {
	noop := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, noop, fmt.Errorf("parse log level: %w", err)
	}

	w, closer, err := sink(file)
	if err != nil {
		return zerolog.Logger{}, noop, err
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), closer, nil
}

func sink(file string) (io.Writer, func(), error) {
	if file == "" {
		if stderrIsTerminal() {
			return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create logs dir: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
