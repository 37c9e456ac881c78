package viewer

import (
	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

// Light placement. Directional lights aim at the origin.
var (
	keyLightPosition  = math3d.V3(10, 10, 5)
	fillLightPosition = math3d.V3(-5, 5, -5)
)

// Key light shadow camera.
const (
	keyShadowMapSize = 2048
	keyShadowNear    = 0.5
	keyShadowFar     = 50
)

// LightingRig is the fixed set of three lights: ambient, key and fill.
type LightingRig struct {
	Ambient *render.AmbientLight
	Key     *render.DirectionalLight
	Fill    *render.DirectionalLight
}

// NewLightingRig creates the lights, adds them to the scene and applies s.
func NewLightingRig(scene *render.Scene, s Settings) *LightingRig {
	rig := &LightingRig{
		Ambient: render.NewAmbientLight(parseColor(s.AmbientColor), s.AmbientIntensity),
		Key:     render.NewDirectionalLight("key", keyLightPosition, parseColor(s.KeyColor), s.KeyIntensity),
		Fill:    render.NewDirectionalLight("fill", fillLightPosition, parseColor(s.FillColor), s.FillIntensity),
	}
	rig.Key.Shadow = render.ShadowConfig{
		MapSize: keyShadowMapSize,
		Near:    keyShadowNear,
		Far:     keyShadowFar,
	}

	scene.Ambient = rig.Ambient
	scene.AddLight(rig.Key)
	scene.AddLight(rig.Fill)
	rig.Refresh(s)
	return rig
}

// Refresh copies colors, intensities and the shadow toggle onto the lights.
func (r *LightingRig) Refresh(s Settings) {
	r.Ambient.Color = parseColor(s.AmbientColor)
	r.Ambient.Intensity = s.AmbientIntensity
	r.Key.Color = parseColor(s.KeyColor)
	r.Key.Intensity = s.KeyIntensity
	r.Key.CastShadow = s.Shadows
	r.Fill.Color = parseColor(s.FillColor)
	r.Fill.Intensity = s.FillIntensity
}
