package logging

import (
	"log"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return zlog.With().Str("cmp", name).Logger()
}

// StdLogger adapts a zerolog logger for libraries that only accept a
// *log.Logger. Every line is emitted as one event at level.
func StdLogger(l zerolog.Logger, level zerolog.Level) *log.Logger {
	return log.New(levelWriter{l: l, level: level}, "", 0)
}

type levelWriter struct {
	l     zerolog.Logger
	level zerolog.Level
}

func (w levelWriter) Write(p []byte) (int, error) {
	w.l.WithLevel(w.level).Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
