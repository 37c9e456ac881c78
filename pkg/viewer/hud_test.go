package viewer

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderHUD(t *testing.T, h *HUD, panel *Panel, loading *LoadingIndicator) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, 120, 40, panel, loading))
	return ansi.Strip(buf.String())
}

func TestHUDShowsFailure(t *testing.T) {
	l := newLoadingIndicator()
	l.Fail("model.glb")

	out := renderHUD(t, NewHUD(), nil, &l)

	assert.Contains(t, out, "✗ Failed to load model")
	assert.Contains(t, out, "Check that model.glb exists")
}

func TestHUDShowsLoadingProgress(t *testing.T) {
	l := newLoadingIndicator()
	assert.Contains(t, renderHUD(t, NewHUD(), nil, &l), "Loading model…")

	l.SetProgress(Progress{Loaded: 42, Total: 100})
	assert.Equal(t, 42, l.Percent)
	assert.Contains(t, renderHUD(t, NewHUD(), nil, &l), "Loading model… 42%")

	l.Hide()
	l.SetProgress(Progress{Loaded: 50, Total: 100})
	assert.False(t, l.Visible())
	assert.NotContains(t, renderHUD(t, NewHUD(), nil, &l), "Loading model")
}

func TestHUDShowsModelAndPanel(t *testing.T) {
	a := newTestApp("unused.glb")
	h := NewHUD()
	h.SetModel("bust.glb", 1234)

	out := renderHUD(t, h, a.Panel(), nil)

	assert.Contains(t, out, "bust.glb")
	assert.Contains(t, out, "1234 polys")
	assert.Contains(t, out, "▸ Ambient color")
	assert.Contains(t, out, "#404040")
	assert.Contains(t, out, "Opacity")
	assert.Contains(t, out, "esc: quit")

	a.Panel().Toggle()
	assert.NotContains(t, renderHUD(t, h, a.Panel(), nil), "Ambient color")
}
