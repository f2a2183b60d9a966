package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// hookedFields are copied onto every event whose context carries them.
var hookedFields = []struct {
	name string
	from func(context.Context) string
}{
	{string(toolKey), GetTool},
	{string(requestIDKey), GetRequestID},
}

// ContextHook tags events logged with .Ctx(ctx) with the MCP tool and
// request id being served.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	for _, f := range hookedFields {
		if v := f.from(ctx); v != "" {
			e.Str(f.name, v)
		}
	}
}
