package viewer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

func TestSnapshotDrawsModel(t *testing.T) {
	a := newTestApp(writeBoxGLB(t, math3d.V3(1, 1, 1), math3d.V3(3, 3, 3)))

	fb, err := a.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, a.Model())

	bg := render.ColorFromColorful(parseColor(a.Settings().BackgroundColor))
	assert.Equal(t, bg, fb.GetPixel(0, 0))

	center := fb.GetPixel(fb.Width/2, fb.Height/2)
	assert.NotEqual(t, bg, center)
	// The box is red, so red dominates where it is drawn.
	assert.Greater(t, center.R, center.G)
	assert.Greater(t, a.viewport.Renderer.Stats().TrianglesDrawn, 0)
}

func TestSnapshotMissingModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.glb")
	a := newTestApp(path)

	_, err := a.Snapshot(context.Background())

	assert.Error(t, err)
	assert.Equal(t, LoadingFailed, a.Loading().State)
	assert.Nil(t, a.Model())
}
