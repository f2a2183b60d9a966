package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyStdio() (stdio, *bytes.Buffer) {
	var out bytes.Buffer
	return stdio{in: strings.NewReader(""), out: &out}, &out
}

func TestServerCommands_StopOnClosedInput(t *testing.T) {
	tests := []struct {
		name     string
		register func(env *testEnv, io stdio)
	}{
		{
			name: "serve",
			register: func(env *testEnv, io stdio) {
				cmd := NewServeCmd(env.flags, env.app)
				cmd.io = io
				cmd.Register(env.root)
			},
		},
		{
			name: "mode",
			register: func(env *testEnv, io stdio) {
				cmd := NewModeCmd(env.app)
				cmd.io = io
				cmd.Register(env.root)
			},
		},
		{
			name: "pim",
			register: func(env *testEnv, io stdio) {
				cmd := NewPimCmd(env.flags, env.app)
				cmd.io = io
				cmd.Register(env.root)
			},
		},
		{
			name: "gtd",
			register: func(env *testEnv, io stdio) {
				cmd := NewGtdCmd(env.flags, env.app)
				cmd.io = io
				cmd.Register(env.root)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			io, out := emptyStdio()
			tt.register(env, io)

			require.NoError(t, env.run(tt.name))
			assert.Empty(t, out.String())
		})
	}
}
