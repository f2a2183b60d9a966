package logging

import "context"

type contextKey string

const (
	toolKey      contextKey = "tool"
	requestIDKey contextKey = "request_id"
)

// WithTool adds the name of the MCP tool being served to the context.
func WithTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, toolKey, tool)
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetTool retrieves the tool name from the context.
// Returns empty string if not present.
func GetTool(ctx context.Context) string {
	if v, ok := ctx.Value(toolKey).(string); ok {
		return v
	}
	return ""
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
