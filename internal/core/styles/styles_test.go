package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"catppuccin", "gruvbox", "tokyo-night"}, ThemeNames())
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	SetTheme(p)

	assert.Equal(t, p, CurrentPalette)
	assert.Equal(t, p.Error, TextErrorStyle.GetForeground())

	_, ok = GetPalette("nope")
	assert.False(t, ok)
}

func TestGlamourStyle(t *testing.T) {
	cfg := GlamourStyle()

	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, string(CurrentPalette.Foreground), *cfg.Document.Color)
	require.NotNil(t, cfg.Link.Color)
	assert.Equal(t, string(CurrentPalette.Secondary), *cfg.Link.Color)
}

func TestFormTheme(t *testing.T) {
	assert.NotNil(t, FormTheme())
}
