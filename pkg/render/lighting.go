package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     colorful.Color
	Intensity float64
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(c colorful.Color, intensity float64) *AmbientLight {
	return &AmbientLight{Color: c, Intensity: intensity}
}

// ShadowConfig describes the orthographic shadow camera of a light.
type ShadowConfig struct {
	MapSize int
	Near    float64
	Far     float64
}

// DirectionalLight shines from Position toward Target.
type DirectionalLight struct {
	Name       string
	Position   math3d.Vec3
	Target     math3d.Vec3
	Color      colorful.Color
	Intensity  float64
	CastShadow bool
	Shadow     ShadowConfig
}

// NewDirectionalLight creates a light at pos aimed at the origin.
func NewDirectionalLight(name string, pos math3d.Vec3, c colorful.Color, intensity float64) *DirectionalLight {
	return &DirectionalLight{
		Name:      name,
		Position:  pos,
		Color:     c,
		Intensity: intensity,
		Shadow: ShadowConfig{
			MapSize: DefaultShadowMapSize,
			Near:    0.5,
			Far:     500,
		},
	}
}

// Direction returns the unit vector from the target toward the light.
func (l *DirectionalLight) Direction() math3d.Vec3 {
	return l.Position.Sub(l.Target).Normalize()
}

// rgb is a linear light multiplier per channel.
type rgb [3]float64

func radiance(c colorful.Color, intensity float64) rgb {
	return rgb{c.R * intensity, c.G * intensity, c.B * intensity}
}

func (a rgb) add(b rgb) rgb {
	return rgb{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a rgb) scale(s float64) rgb {
	return rgb{a[0] * s, a[1] * s, a[2] * s}
}

// directTerm is one directional light prepared for a frame.
type directTerm struct {
	dir    math3d.Vec3
	light  rgb
	shadow *ShadowMap // nil when the light casts no shadow this frame
}

// lighting is the per-frame light state used for vertex shading.
type lighting struct {
	ambient rgb
	direct  []directTerm
}

func newLighting(scene *Scene, shadows map[*DirectionalLight]*ShadowMap) lighting {
	var lt lighting
	if scene.Ambient != nil {
		lt.ambient = radiance(scene.Ambient.Color, scene.Ambient.Intensity)
	}
	for _, l := range scene.Directional {
		lt.direct = append(lt.direct, directTerm{
			dir:    l.Direction(),
			light:  radiance(l.Color, l.Intensity),
			shadow: shadows[l],
		})
	}
	return lt
}

// shade returns the light reaching a vertex with the given world position
// and unit normal.
func (lt lighting) shade(pos, normal math3d.Vec3, receiveShadow bool) rgb {
	total := lt.ambient
	for _, d := range lt.direct {
		ndotl := math.Max(0, normal.Dot(d.dir))
		if ndotl == 0 {
			continue
		}
		vis := 1.0
		if receiveShadow && d.shadow != nil {
			vis = d.shadow.Visibility(pos, normal)
		}
		total = total.add(d.light.scale(ndotl * vis))
	}
	return total
}
