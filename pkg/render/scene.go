package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// MeshRenderer is implemented by models.Mesh.
// This interface allows drawing meshes without importing the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// MaterialMesh is a bounded mesh whose faces reference materials.
type MaterialMesh interface {
	BoundedMeshRenderer
	GetFaceMaterial(i int) int
}

// Surface is the resolved look of one material: a base color, an alpha
// and an optional base color texture.
type Surface struct {
	Color   colorful.Color
	Alpha   float64
	Texture *Texture
}

// DefaultSurface is used for faces without a material.
func DefaultSurface() Surface {
	return Surface{Color: colorful.Color{R: 0.8, G: 0.8, B: 0.8}, Alpha: 1}
}

// Opaque reports whether the surface draws without blending.
func (s Surface) Opaque() bool {
	return s.Alpha >= 1
}

// Object is a mesh placed in the scene.
type Object struct {
	Mesh      MaterialMesh
	Transform math3d.Mat4
	Surfaces  []Surface // Indexed by face material

	CastShadow    bool
	ReceiveShadow bool
}

// NewObject creates an object with an identity transform.
func NewObject(mesh MaterialMesh) *Object {
	return &Object{Mesh: mesh, Transform: math3d.Identity()}
}

// WorldBounds returns the mesh bounds after the object transform.
func (o *Object) WorldBounds() math3d.AABB {
	if o.Mesh.VertexCount() == 0 {
		return math3d.EmptyAABB()
	}
	lo, hi := o.Mesh.GetBounds()
	return math3d.NewAABB(lo, hi).Transform(o.Transform)
}

func (o *Object) surface(face int) Surface {
	idx := o.Mesh.GetFaceMaterial(face)
	if idx < 0 || idx >= len(o.Surfaces) {
		return DefaultSurface()
	}
	return o.Surfaces[idx]
}

// BackgroundKind selects how the background is drawn.
type BackgroundKind int

const (
	BackgroundSolid   BackgroundKind = iota // Flat color
	BackgroundTexture                       // Texture stretched over the viewport
)

func (k BackgroundKind) String() string {
	switch k {
	case BackgroundSolid:
		return "solid"
	case BackgroundTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// Background is what the renderer clears the framebuffer to.
type Background struct {
	Kind    BackgroundKind
	Color   colorful.Color
	Texture *Texture
}

// SolidBackground returns a flat color background.
func SolidBackground(c colorful.Color) Background {
	return Background{Kind: BackgroundSolid, Color: c}
}

// TextureBackground returns a background that stretches tex over the viewport.
func TextureBackground(tex *Texture) Background {
	return Background{Kind: BackgroundTexture, Texture: tex}
}

// Scene holds everything the renderer draws in one frame.
type Scene struct {
	Background  Background
	Ambient     *AmbientLight
	Directional []*DirectionalLight
	Objects     []*Object
}

// NewScene creates an empty scene with a black background.
func NewScene() *Scene {
	return &Scene{Background: SolidBackground(colorful.Color{})}
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...*Object) {
	s.Objects = append(s.Objects, objs...)
}

// AddLight appends a directional light to the scene.
func (s *Scene) AddLight(l *DirectionalLight) {
	s.Directional = append(s.Directional, l)
}

// LightCount returns the number of lights, counting the ambient light.
func (s *Scene) LightCount() int {
	n := len(s.Directional)
	if s.Ambient != nil {
		n++
	}
	return n
}

// Bounds returns the union of all object bounds in world space.
func (s *Scene) Bounds() math3d.AABB {
	box := math3d.EmptyAABB()
	for _, obj := range s.Objects {
		box = box.Union(obj.WorldBounds())
	}
	return box
}
