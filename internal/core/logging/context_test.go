package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTool(t *testing.T) {
	ctx := WithTool(context.Background(), "enter_mode")
	assert.Equal(t, "enter_mode", GetTool(ctx))
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTool(ctx))
	assert.Empty(t, GetRequestID(ctx))
}

func TestBothValues(t *testing.T) {
	ctx := WithTool(context.Background(), "list_events")
	ctx = WithRequestID(ctx, "7")

	assert.Equal(t, "list_events", GetTool(ctx))
	assert.Equal(t, "7", GetRequestID(ctx))
}
