package render

import (
	"math"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// DefaultShadowMapSize caps the shadow map resolution. A terminal viewport
// is a few hundred pixels across, so larger maps only cost time.
const DefaultShadowMapSize = 512

// minShadowMapSize keeps tiny viewports from producing blocky shadows.
const minShadowMapSize = 64

// ShadowMapSize picks a map size for a light that asks for requested
// texels, scaled to a framebuffer of the given size.
func ShadowMapSize(requested, fbWidth, fbHeight int) int {
	size := min(requested, DefaultShadowMapSize, 2*max(fbWidth, fbHeight))
	return max(size, minShadowMapSize)
}

// ShadowMap is a depth map rendered from a directional light through an
// orthographic camera fitted around the shadow casters.
type ShadowMap struct {
	Size int
	Bias float64 // Depth bias in NDC units

	depth     []float64
	viewProj  math3d.Mat4
	texelSize float64 // World units covered by one texel
	valid     bool
}

// NewShadowMap creates a square shadow map.
func NewShadowMap(size int) *ShadowMap {
	return &ShadowMap{
		Size:  size,
		Bias:  0.005,
		depth: make([]float64, size*size),
	}
}

// Resize reallocates the map when the size changes.
func (s *ShadowMap) Resize(size int) {
	if size == s.Size {
		return
	}
	s.Size = size
	s.depth = make([]float64, size*size)
	s.valid = false
}

// Update renders the casters' depth from the light. The map is left
// invalid, and every point lit, when nothing casts a shadow.
func (s *ShadowMap) Update(light *DirectionalLight, casters []*Object) {
	s.valid = false
	for i := range s.depth {
		s.depth[i] = math.MaxFloat64
	}

	bounds := math3d.EmptyAABB()
	for _, obj := range casters {
		if obj.CastShadow {
			bounds = bounds.Union(obj.WorldBounds())
		}
	}
	if bounds.IsEmpty() {
		return
	}

	dir := light.Position.Sub(light.Target).Normalize()
	up := math3d.Up()
	if math.Abs(dir.Dot(up)) > 0.99 {
		up = math3d.V3(0, 0, 1)
	}
	view := math3d.LookAt(light.Position, light.Target, up)

	// Fit the orthographic frustum to the casters in light space.
	ls := bounds.Transform(view)
	pad := ls.Size().MaxComponent()*0.05 + 1e-3
	near := math.Max(light.Shadow.Near, -ls.Max.Z-pad)
	far := math.Min(light.Shadow.Far, -ls.Min.Z+pad)
	if near >= far {
		near, far = light.Shadow.Near, light.Shadow.Far
	}
	left, right := ls.Min.X-pad, ls.Max.X+pad
	bottom, top := ls.Min.Y-pad, ls.Max.Y+pad

	s.viewProj = math3d.Orthographic(left, right, bottom, top, near, far).Mul(view)
	s.texelSize = math.Max(right-left, top-bottom) / float64(s.Size)

	for _, obj := range casters {
		if obj.CastShadow {
			s.drawCaster(obj)
		}
	}
	s.valid = true
}

func (s *ShadowMap) drawCaster(obj *Object) {
	mvp := s.viewProj.Mul(obj.Transform)
	mesh := obj.Mesh
	size := float64(s.Size)

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)
		var pts [3][2]float64
		var z [3]float64
		for k, idx := range face {
			pos, _, _ := mesh.GetVertex(idx)
			ndc := mvp.MulVec3(pos)
			pts[k] = [2]float64{(ndc.X + 1) * 0.5 * size, (1 - ndc.Y) * 0.5 * size}
			z[k] = ndc.Z
		}
		// Both faces write depth so open meshes still cast.
		rasterizeTriangle(s.Size, s.Size, pts, false, func(x, y int, b0, b1, b2 float64) {
			d := b0*z[0] + b1*z[1] + b2*z[2]
			idx := y*s.Size + x
			if d < s.depth[idx] {
				s.depth[idx] = d
			}
		})
	}
}

// Visibility returns the lit fraction of a world-space point in [0,1],
// filtered over a 3x3 texel neighbourhood. The point is pushed along its
// normal by a texel and a half to keep surfaces from shadowing themselves.
func (s *ShadowMap) Visibility(pos, normal math3d.Vec3) float64 {
	if !s.valid {
		return 1
	}
	p := pos.Add(normal.Scale(s.texelSize * 1.5))
	ndc := s.viewProj.MulVec3(p)
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 {
		return 1
	}
	// Receivers past the fitted far plane are behind every caster.
	ndc.Z = math.Min(ndc.Z, 1)

	size := float64(s.Size)
	cx := int((ndc.X + 1) * 0.5 * size)
	cy := int((1 - ndc.Y) * 0.5 * size)
	lit, total := 0, 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || x >= s.Size || y < 0 || y >= s.Size {
				continue
			}
			total++
			if ndc.Z-s.Bias <= s.depth[y*s.Size+x] {
				lit++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(lit) / float64(total)
}
