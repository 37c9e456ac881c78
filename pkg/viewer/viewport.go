package viewer

import (
	"github.com/taigrr/vitrine/pkg/render"
)

// Viewport owns the scene, the camera and the render target, sized to the
// terminal in cells.
type Viewport struct {
	Scene    *render.Scene
	Camera   *render.Camera
	Renderer *render.Renderer

	presenter  *render.TerminalRenderer
	cols, rows int
}

// NewViewport creates a viewport for a terminal of cols x rows cells.
func NewViewport(cols, rows int) *Viewport {
	cols, rows = max(cols, 1), max(rows, 1)
	// Half blocks give two pixels per cell vertically.
	fb := render.NewFramebuffer(cols, rows*2)
	v := &Viewport{
		Scene:    render.NewScene(),
		Camera:   render.NewCamera(),
		Renderer: render.NewRenderer(fb),
		cols:     cols,
		rows:     rows,
	}
	v.Camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	return v
}

// Attach routes presented frames to a terminal screen. A nil screen
// detaches the viewport, so frames are rendered but never presented.
func (v *Viewport) Attach(screen render.Display) {
	if screen == nil {
		v.presenter = nil
		return
	}
	v.presenter = render.NewTerminalRenderer(screen, v.cols, v.rows)
}

// Size returns the viewport size in cells.
func (v *Viewport) Size() (cols, rows int) {
	return v.cols, v.rows
}

// Resize reallocates the framebuffer and depth buffer and updates the
// camera aspect ratio.
func (v *Viewport) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	v.cols, v.rows = cols, rows
	v.Renderer.Resize(cols, rows*2)
	if v.presenter != nil {
		v.presenter.Resize(cols, rows)
	}
	fb := v.Renderer.Framebuffer()
	v.Camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
}

// Render draws the scene into the framebuffer.
func (v *Viewport) Render() {
	v.Renderer.Render(v.Scene, v.Camera)
}

// Present copies the framebuffer to the attached terminal.
func (v *Viewport) Present() error {
	if v.presenter == nil {
		return nil
	}
	v.presenter.Render(v.Renderer.Framebuffer())
	return v.presenter.Flush()
}
