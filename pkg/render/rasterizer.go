package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// Vertex represents a vertex with all attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // World position
	Normal   math3d.Vec3 // Normal vector (for lighting)
	UV       math3d.Vec2 // Texture coordinates
	Color    Color       // Vertex color
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Rasterizer handles software triangle rasterization.
type Rasterizer struct {
	camera                 *Camera
	fb                     *Framebuffer
	zbuffer                []float64    // Depth buffer (1D array, row-major)
	frustum                Frustum      // Cached frustum planes
	frustumDirty           bool         // Whether frustum needs recalculation
	CullingStats           CullingStats // Statistics for the HUD
	DisableBackfaceCulling bool         // If true, render both sides of triangles
}

// CullingStats tracks frustum culling and triangle counts for a frame.
type CullingStats struct {
	MeshesTested   int // Total meshes tested for culling
	MeshesCulled   int // Meshes culled (not rendered)
	MeshesDrawn    int // Meshes that passed culling
	TrianglesDrawn int // Triangles that reached the pixel loop
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:       camera,
		fb:           fb,
		frustumDirty: true,
	}
	r.Resize()
	return r
}

// SetCamera switches the camera used for projection.
func (r *Rasterizer) SetCamera(camera *Camera) {
	if camera != r.camera {
		r.camera = camera
		r.frustumDirty = true
	}
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// InvalidateFrustum marks the frustum as needing recalculation.
// Call this when the camera moves or rotates.
func (r *Rasterizer) InvalidateFrustum() {
	r.frustumDirty = true
}

// UpdateFrustum recalculates the frustum planes from the camera.
func (r *Rasterizer) UpdateFrustum() {
	if r.frustumDirty {
		r.frustum = r.camera.Frustum()
		r.frustumDirty = false
	}
}

// ResetCullingStats resets the culling statistics (call once per frame).
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// IsVisible tests if a world-space AABB is visible in the frustum.
func (r *Rasterizer) IsVisible(worldBounds math3d.AABB) bool {
	r.UpdateFrustum()
	return r.frustum.IntersectAABB(worldBounds)
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y  float64 // Screen coordinates
	Z     float64 // Depth (for Z-buffer)
	W     float64 // W coordinate (for perspective-correct interpolation)
	Light rgb     // Light reaching the vertex
	UV    math3d.Vec2
}

// project transforms a world-space point to screen space.
func (r *Rasterizer) project(viewProj math3d.Mat4, p math3d.Vec3) screenVertex {
	clip := viewProj.MulVec4(math3d.V4FromV3(p, 1))
	var sv screenVertex
	if clip.W != 0 {
		invW := 1.0 / clip.W
		sv.X = clip.X * invW
		sv.Y = clip.Y * invW
		sv.Z = clip.Z * invW
	}
	sv.W = clip.W

	// NDC to screen coordinates
	sv.X = (sv.X + 1) * 0.5 * float64(r.Width())
	sv.Y = (1 - sv.Y) * 0.5 * float64(r.Height()) // Y flipped
	return sv
}

// DrawTriangle rasterizes a single unlit triangle with interpolated vertex
// colors.
func (r *Rasterizer) DrawTriangle(tri Triangle) {
	viewProj := r.camera.ViewProjectionMatrix()
	var sv [3]screenVertex
	for i, v := range tri.V {
		sv[i] = r.project(viewProj, v.Position)
		sv[i].Light = rgb{float64(v.Color.R) / 255, float64(v.Color.G) / 255, float64(v.Color.B) / 255}
		sv[i].UV = v.UV
	}
	r.drawTriangle(sv, Surface{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1})
}

// drawTriangle fills a projected triangle. Light and UV are interpolated
// perspective-correct. Translucent surfaces blend over what is already in
// the framebuffer and still write depth.
func (r *Rasterizer) drawTriangle(sv [3]screenVertex, surf Surface) {
	// Triangles touching the near plane would project through the eye.
	near := r.camera.Near
	if sv[0].W < near || sv[1].W < near || sv[2].W < near {
		return
	}

	pts := [3][2]float64{{sv[0].X, sv[0].Y}, {sv[1].X, sv[1].Y}, {sv[2].X, sv[2].Y}}
	invW := [3]float64{1 / sv[0].W, 1 / sv[1].W, 1 / sv[2].W}
	width := r.Width()
	zbuffer := r.zbuffer
	fb := r.fb
	tex := surf.Texture
	base := surf.Color
	drawn := false

	rasterizeTriangle(width, r.Height(), pts, !r.DisableBackfaceCulling, func(x, y int, b0, b1, b2 float64) {
		drawn = true
		z := b0*sv[0].Z + b1*sv[1].Z + b2*sv[2].Z
		idx := y*width + x
		if z >= zbuffer[idx] {
			return
		}

		// Perspective-correct interpolation
		w0, w1, w2 := b0*invW[0], b1*invW[1], b2*invW[2]
		oneOverW := w0 + w1 + w2
		if oneOverW == 0 {
			return
		}
		w0, w1, w2 = w0/oneOverW, w1/oneOverW, w2/oneOverW

		lr := w0*sv[0].Light[0] + w1*sv[1].Light[0] + w2*sv[2].Light[0]
		lg := w0*sv[0].Light[1] + w1*sv[1].Light[1] + w2*sv[2].Light[1]
		lb := w0*sv[0].Light[2] + w1*sv[1].Light[2] + w2*sv[2].Light[2]

		cr, cg, cb, alpha := base.R, base.G, base.B, surf.Alpha
		if tex != nil {
			u := w0*sv[0].UV.X + w1*sv[1].UV.X + w2*sv[2].UV.X
			v := w0*sv[0].UV.Y + w1*sv[1].UV.Y + w2*sv[2].UV.Y
			texel := tex.Sample(u, v)
			cr *= float64(texel.R) / 255
			cg *= float64(texel.G) / 255
			cb *= float64(texel.B) / 255
			alpha *= float64(texel.A) / 255
		}

		c := Color{R: toByte(cr * lr), G: toByte(cg * lg), B: toByte(cb * lb), A: 255}
		zbuffer[idx] = z
		if alpha >= 1 {
			fb.Pixels[idx] = c
		} else {
			fb.BlendPixel(x, y, c, alpha)
		}
	})

	if drawn {
		r.CullingStats.TrianglesDrawn++
	}
}

// preparedObject is an object whose vertices are projected and lit.
type preparedObject struct {
	obj   *Object
	verts []screenVertex
}

// prepare culls the object against the view frustum, then projects and
// shades every vertex once. It returns false for culled objects.
func (r *Rasterizer) prepare(obj *Object, lt lighting) (preparedObject, bool) {
	r.CullingStats.MeshesTested++
	if !r.IsVisible(obj.WorldBounds()) {
		r.CullingStats.MeshesCulled++
		return preparedObject{}, false
	}
	r.CullingStats.MeshesDrawn++

	viewProj := r.camera.ViewProjectionMatrix()
	normalMat := obj.Transform.NormalMatrix()
	mesh := obj.Mesh
	verts := make([]screenVertex, mesh.VertexCount())
	for i := range verts {
		pos, normal, uv := mesh.GetVertex(i)
		world := obj.Transform.MulVec3(pos)
		n := normalMat.MulVec3Dir(normal).Normalize()

		sv := r.project(viewProj, world)
		sv.Light = lt.shade(world, n, obj.ReceiveShadow)
		sv.UV = uv
		verts[i] = sv
	}
	return preparedObject{obj: obj, verts: verts}, true
}

// drawPrepared draws the faces of a prepared object whose surface opacity
// matches opaque.
func (r *Rasterizer) drawPrepared(p preparedObject, opaque bool) {
	mesh := p.obj.Mesh
	for i := 0; i < mesh.TriangleCount(); i++ {
		surf := p.obj.surface(i)
		if surf.Opaque() != opaque {
			continue
		}
		face := mesh.GetFace(i)
		r.drawTriangle([3]screenVertex{p.verts[face[0]], p.verts[face[1]], p.verts[face[2]]}, surf)
	}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
