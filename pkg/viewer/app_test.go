package viewer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/render"
)

func TestNewAppDefaults(t *testing.T) {
	a := New(Options{Settings: DefaultSettings()}, nil)

	assert.Equal(t, DefaultModelPath, a.modelPath)
	assert.Equal(t, DefaultFPS, a.fps)
	assert.Equal(t, 3, a.Scene().LightCount())
	assert.NotNil(t, a.Scene().Ambient)
	assertVecNear(t, math3d.V3(5, 5, 5), a.Camera().Position, 1e-9)
	assert.Equal(t, LoadingActive, a.Loading().State)
	assert.Nil(t, a.Model())
	for _, c := range a.Panel().Controls() {
		assert.True(t, c.Bound(), "control %s not bound", c.ID)
	}
}

func TestLoadFitsModelToView(t *testing.T) {
	a := newTestApp(writeBoxGLB(t, math3d.V3(2, 4, 1), math3d.V3(10, -3, 2)))
	finishLoad(t, a)

	m := a.Model()
	require.NotNil(t, m)

	bounds := m.WorldBounds()
	assertVecNear(t, math3d.Zero3(), bounds.Center(), 1e-6)
	assert.InDelta(t, FitSpan, bounds.Size().MaxComponent(), 1e-6)

	// d = maxDim * scale * 2 = 4 * 0.75 * 2
	assertVecNear(t, math3d.V3(6, 6, 6), a.Camera().Position, 1e-6)

	assert.Len(t, a.Scene().Objects, 1)
	for _, mesh := range m.Meshes {
		assert.True(t, mesh.CastShadow)
		assert.True(t, mesh.ReceiveShadow)
	}
	assert.False(t, a.Loading().Visible())
}

func TestResetViewKeepsModelTransform(t *testing.T) {
	a := newTestApp(writeBoxGLB(t, math3d.V3(1, 1, 2), math3d.V3(0, 5, 0)))
	finishLoad(t, a)

	m := a.Model()
	require.NotNil(t, m)
	position, scale := m.Position, m.Scale

	a.controls.Rotate(0.5, 0.2)
	a.controls.Zoom(-10)
	for range 30 {
		a.controls.Update()
	}
	moved := a.Camera().Position

	a.ResetView()

	// World max dimension is 3 after the fit, so d = 6.
	assertVecNear(t, math3d.V3(6, 6, 6), a.Camera().Position, 1e-6)
	assert.NotEqual(t, moved, a.Camera().Position)
	assert.Equal(t, position, m.Position)
	assert.Equal(t, scale, m.Scale)
	assert.False(t, a.controls.Moving())
}

func TestResetViewWithoutModel(t *testing.T) {
	a := newTestApp("unused.glb")
	before := a.Camera().Position

	a.ResetView()

	assert.Equal(t, before, a.Camera().Position)
}

func TestFailedLoadShowsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.glb")
	a := newTestApp(path)
	finishLoad(t, a)

	assert.Nil(t, a.Model())
	assert.Empty(t, a.Scene().Objects)
	assert.Equal(t, LoadingFailed, a.Loading().State)
	assert.Equal(t, []string{
		"✗ Failed to load model",
		"Check that " + path + " exists",
	}, a.Loading().Lines)
}

func TestDegenerateModelFails(t *testing.T) {
	a := newTestApp("empty.glb")

	a.handleLoadResult(LoadResult{Model: models.NewModel("empty")})

	assert.Nil(t, a.Model())
	assert.Empty(t, a.Scene().Objects)
	assert.Equal(t, LoadingFailed, a.Loading().State)
}

func TestLoadErrorResult(t *testing.T) {
	a := newTestApp("broken.glb")

	a.handleLoadResult(LoadResult{Err: errors.New("boom")})

	assert.Equal(t, LoadingFailed, a.Loading().State)
	assert.Contains(t, a.Loading().Lines, "Check that broken.glb exists")
}

func TestOpacityReachesMaterials(t *testing.T) {
	a := newTestApp(writeBoxGLB(t, math3d.V3(1, 1, 1), math3d.Zero3()))
	finishLoad(t, a)
	require.NotNil(t, a.Model())

	opacity := a.Panel().Control("opacity")
	for range 10 {
		opacity.Fire(-1)
	}

	assert.InDelta(t, 0.5, a.Settings().Opacity, 1e-9)
	a.Model().TraverseMaterials(func(mat *models.Material) {
		assert.InDelta(t, 0.5, mat.Opacity, 1e-9)
		assert.True(t, mat.Transparent)
	})
	for _, obj := range a.Scene().Objects {
		for _, s := range obj.Surfaces {
			assert.InDelta(t, 0.5, s.Alpha, 1e-9)
		}
	}
}

func TestDoubleClickWindow(t *testing.T) {
	a := newTestApp("unused.glb")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	a.now = func() time.Time { return now }

	assert.False(t, a.click(1, 1))
	now = base.Add(300 * time.Millisecond)
	assert.True(t, a.click(1, 1))

	// A third click starts a new pair.
	now = base.Add(500 * time.Millisecond)
	assert.False(t, a.click(1, 1))
	now = base.Add(1500 * time.Millisecond)
	assert.False(t, a.click(1, 1))
}

func TestActions(t *testing.T) {
	a := newTestApp("unused.glb")

	assert.True(t, a.do(actionQuit))

	a.do(actionTogglePanel)
	assert.False(t, a.Panel().Visible)
	a.do(actionTogglePanel)
	assert.True(t, a.Panel().Visible)

	first := a.Panel().Focused()
	a.do(actionFocusNext)
	assert.NotEqual(t, first, a.Panel().Focused())
	a.do(actionFocusPrev)
	assert.Equal(t, first, a.Panel().Focused())

	// The first control is the ambient color.
	a.do(actionIncrease)
	assert.NotEqual(t, DefaultSettings().AmbientColor, a.Settings().AmbientColor)

	a.do(actionZoomIn)
	assert.True(t, a.controls.Moving())
}

func TestResizeFollowsTerminal(t *testing.T) {
	var got [2]int
	a := New(Options{
		Settings: DefaultSettings(),
		Width:    80,
		Height:   24,
		OnResize: func(w, h int) { got = [2]int{w, h} },
	}, nil)

	a.handleEvent(uv.WindowSizeEvent{Width: 100, Height: 30})

	assert.Equal(t, [2]int{100, 30}, got)
	cols, rows := a.viewport.Size()
	assert.Equal(t, 100, cols)
	assert.Equal(t, 30, rows)
	fb := a.viewport.Renderer.Framebuffer()
	assert.Equal(t, 100, fb.Width)
	assert.Equal(t, 60, fb.Height)
	assert.InDelta(t, 100.0/60.0, a.Camera().AspectRatio, 1e-9)
}

func TestSettingsUpdateReplacesRecord(t *testing.T) {
	a := newTestApp("unused.glb")
	s := DefaultSettings()
	s.BackgroundMode = BackgroundModeGradient
	s.KeyIntensity = 0.2
	s.AutoRotate = true

	a.ApplySettings(s)

	assert.Equal(t, s, a.Settings())
	assert.Equal(t, render.BackgroundTexture, a.Scene().Background.Kind)
	assert.InDelta(t, 0.2, a.lights.Key.Intensity, 1e-9)
	assert.True(t, a.controls.AutoRotate)
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newTestApp(filepath.Join(t.TempDir(), "missing.glb"))
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := a.Run(ctx, make(chan uv.Event), nil, nil)

	assert.NoError(t, err)
}

func TestRunClampsFrameRate(t *testing.T) {
	a := New(Options{
		ModelPath: filepath.Join(t.TempDir(), "missing.glb"),
		Settings:  DefaultSettings(),
		FPS:       2_000_000_000,
		Width:     80,
		Height:    24,
	}, nil)
	assert.Equal(t, MaxFPS, a.fps)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, a.Run(ctx, make(chan uv.Event), nil, nil))
}

func TestRunStopsWhenEventsClose(t *testing.T) {
	a := newTestApp(filepath.Join(t.TempDir(), "missing.glb"))
	events := make(chan uv.Event)
	close(events)

	err := a.Run(context.Background(), events, nil, nil)

	assert.NoError(t, err)
}
