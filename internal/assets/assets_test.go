package assets

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBundle(t *testing.T) {
	assert.Equal(t, []string{"governance", "gtd", "transmission"}, SkillNames())
	assert.Equal(t, []string{"builder", "documenter", "explore", "researcher", "reviewer"}, AgentNames())

	for _, a := range append(Skills(), Agents()...) {
		assert.NotEmpty(t, a.Meta.Description, "%s %s", a.Kind, a.Name)
		assert.NotEmpty(t, a.Body, "%s %s", a.Kind, a.Name)
		assert.NotContains(t, a.Body, "description:", "front matter is stripped from %s", a.Name)
	}
}

func TestSkill_Content(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "transmission", want: "transmission"},
		{name: "gtd", want: "GTD"},
		{name: "governance", want: "Governance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Skill(tt.name)
			require.True(t, ok)
			assert.Equal(t, KindSkill, s.Kind)
			assert.Contains(t, string(s.Content), tt.want)
			assert.Contains(t, string(s.Content), "---\nname: "+tt.name)
		})
	}

	_, ok := Skill("nonexistent")
	assert.False(t, ok)
}

func TestAgent_Meta(t *testing.T) {
	a, ok := Agent("explore")
	require.True(t, ok)

	assert.Equal(t, "explore", a.Meta.Name, "name falls back to the file name")
	assert.Equal(t, "subagent", a.Meta.Mode)
	assert.NotEmpty(t, a.Meta.Model)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "missing description",
			fsys: fstest.MapFS{
				"skills/x/SKILL.md": {Data: []byte("---\nname: x\n---\nbody\n")},
			},
			want: "missing description",
		},
		{
			name: "name mismatch",
			fsys: fstest.MapFS{
				"skills/x/SKILL.md": {Data: []byte("---\nname: y\ndescription: d\n---\nbody\n")},
			},
			want: `does not match "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSelect(t *testing.T) {
	b := Default()

	tests := []struct {
		name      string
		kind      Kind
		requested []string
		want      []string
		wantErr   string
	}{
		{name: "nil selects all", kind: KindSkill, requested: nil, want: []string{"governance", "gtd", "transmission"}},
		{name: "exact", kind: KindSkill, requested: []string{"gtd"}, want: []string{"gtd"}},
		{name: "keeps request order", kind: KindSkill, requested: []string{"transmission", "gtd"}, want: []string{"transmission", "gtd"}},
		{name: "trims and skips blanks", kind: KindSkill, requested: []string{" gtd ", ""}, want: []string{"gtd"}},
		{name: "glob", kind: KindAgent, requested: []string{"re*"}, want: []string{"researcher", "reviewer"}},
		{name: "deduplicates", kind: KindAgent, requested: []string{"builder", "b*"}, want: []string{"builder"}},
		{name: "empty request selects none", kind: KindSkill, requested: []string{}, want: nil},
		{name: "unknown", kind: KindSkill, requested: []string{"nope"}, wantErr: `unknown skill "nope" (available: governance, gtd, transmission)`},
		{name: "bad pattern", kind: KindAgent, requested: []string{"[x"}, wantErr: "invalid agent pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Select(tt.kind, tt.requested)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			var names []string
			for _, a := range got {
				names = append(names, a.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSelect_UnknownIsSentinel(t *testing.T) {
	_, err := Default().Select(KindAgent, []string{"wizard"})
	require.ErrorIs(t, err, ErrUnknownAsset)

	var unknown *UnknownError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "wizard", unknown.Name)
	assert.Equal(t, KindAgent, unknown.Kind)
}
