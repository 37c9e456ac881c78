package models

import (
	"errors"
	"image"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// ErrNoGeometry is returned for models without triangles or with a zero
// extent, which cannot be framed.
var ErrNoGeometry = errors.New("model has no drawable geometry")

// Model is the root of a loaded asset: its meshes plus one uniform
// root transform (translation and scale) applied on top of model space.
type Model struct {
	Name    string
	Meshes  []*Mesh
	Texture image.Image // First embedded base color texture, if any

	Position math3d.Vec3
	Scale    float64
}

// NewModel creates an empty model with an identity root transform.
func NewModel(name string) *Model {
	return &Model{Name: name, Scale: 1}
}

// Transform returns the root transform: translate * uniform scale.
func (m *Model) Transform() math3d.Mat4 {
	return math3d.Translate(m.Position).Mul(math3d.ScaleUniform(m.Scale))
}

// LocalBounds returns the union of all mesh bounds in model space.
func (m *Model) LocalBounds() math3d.AABB {
	box := math3d.EmptyAABB()
	for _, mesh := range m.Meshes {
		box = box.Union(mesh.Bounds())
	}
	return box
}

// WorldBounds returns the model bounds after the root transform.
func (m *Model) WorldBounds() math3d.AABB {
	return m.LocalBounds().Transform(m.Transform())
}

// TriangleCount returns the number of triangles across all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.TriangleCount()
	}
	return n
}

// VertexCount returns the number of vertices across all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.VertexCount()
	}
	return n
}

// Traverse calls fn for every mesh in the model.
func (m *Model) Traverse(fn func(*Mesh)) {
	for _, mesh := range m.Meshes {
		fn(mesh)
	}
}

// TraverseMaterials calls fn for every material of every mesh.
func (m *Model) TraverseMaterials(fn func(*Material)) {
	m.Traverse(func(mesh *Mesh) {
		for i := range mesh.Materials {
			fn(&mesh.Materials[i])
		}
	})
}

// FitToSpan recenters the model on the origin and scales it uniformly so
// its largest dimension equals span. It returns the largest dimension of
// the model before scaling and the scale applied.
func (m *Model) FitToSpan(span float64) (maxDim, scale float64, err error) {
	box := m.LocalBounds()
	if box.IsEmpty() {
		return 0, 0, ErrNoGeometry
	}

	maxDim = box.Size().MaxComponent()
	if maxDim <= 0 {
		return 0, 0, ErrNoGeometry
	}

	scale = span / maxDim
	m.Scale = scale
	m.Position = box.Center().Scale(-scale)
	return maxDim, scale, nil
}

// EnableShadows turns on shadow casting and receiving for every mesh.
func (m *Model) EnableShadows() {
	m.Traverse(func(mesh *Mesh) {
		mesh.CastShadow = true
		mesh.ReceiveShadow = true
	})
}
