package viewer

import (
	"github.com/taigrr/vitrine/pkg/render"
)

// The gradient is uniform across rows, so a narrow texture is enough.
const (
	gradientTextureWidth  = 2
	gradientTextureHeight = 256
)

// BackgroundManager sets the scene background from the settings.
type BackgroundManager struct {
	scene *render.Scene

	// Last gradient built, reused while the stops are unchanged.
	gradient      *render.Texture
	gradientStops [2]string
}

// NewBackgroundManager creates a manager and applies s.
func NewBackgroundManager(scene *render.Scene, s Settings) *BackgroundManager {
	b := &BackgroundManager{scene: scene}
	b.Refresh(s)
	return b
}

// Refresh rebuilds the background: a flat color in solid mode, or a
// vertical gradient texture in gradient mode.
func (b *BackgroundManager) Refresh(s Settings) {
	if s.BackgroundMode != BackgroundModeGradient {
		b.scene.Background = render.SolidBackground(parseColor(s.BackgroundColor))
		return
	}

	stops := [2]string{s.GradientTop, s.GradientBottom}
	if b.gradient == nil || stops != b.gradientStops {
		b.gradient = render.NewVerticalGradientTexture(
			gradientTextureWidth, gradientTextureHeight,
			parseColor(s.GradientTop), parseColor(s.GradientBottom),
		)
		b.gradientStops = stops
	}
	b.scene.Background = render.TextureBackground(b.gradient)
}
