package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// boxMesh returns a mesh whose vertices span min..max.
func boxMesh(min, max math3d.Vec3) *Mesh {
	mesh := NewMesh("box")
	for _, c := range math3d.NewAABB(min, max).Corners() {
		mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: c})
	}
	mesh.Faces = []Face{{V: [3]int{0, 1, 2}}}
	mesh.Materials = []Material{DefaultMaterial()}
	mesh.CalculateBounds()
	return mesh
}

func TestFitToSpan(t *testing.T) {
	tests := []struct {
		name     string
		min, max math3d.Vec3
		wantDim  float64
	}{
		{"offset box", math3d.V3(10, 20, 30), math3d.V3(14, 22, 31), 4},
		{"tall box", math3d.V3(-1, 0, -1), math3d.V3(1, 100, 1), 100},
		{"tiny box", math3d.V3(0, 0, 0), math3d.V3(0.01, 0.002, 0.003), 0.01},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := NewModel("m")
			model.Meshes = []*Mesh{boxMesh(tc.min, tc.max)}

			maxDim, scale, err := model.FitToSpan(3)
			if err != nil {
				t.Fatalf("FitToSpan: %v", err)
			}
			if math.Abs(maxDim-tc.wantDim) > 1e-9 {
				t.Errorf("maxDim = %v, want %v", maxDim, tc.wantDim)
			}
			if math.Abs(maxDim*scale-3) > 1e-9 {
				t.Errorf("maxDim*scale = %v, want 3", maxDim*scale)
			}

			world := model.WorldBounds()
			c := world.Center()
			if c.Len() > 1e-9 {
				t.Errorf("world center = %v, want origin", c)
			}
			if got := world.Size().MaxComponent(); math.Abs(got-3) > 1e-9 {
				t.Errorf("world max dimension = %v, want 3", got)
			}
		})
	}
}

func TestFitToSpanEmpty(t *testing.T) {
	model := NewModel("empty")
	if _, _, err := model.FitToSpan(3); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}

	flat := NewModel("point")
	flat.Meshes = []*Mesh{boxMesh(math3d.V3(1, 1, 1), math3d.V3(1, 1, 1))}
	if _, _, err := flat.FitToSpan(3); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("zero-extent err = %v, want ErrNoGeometry", err)
	}
}

func TestEnableShadows(t *testing.T) {
	model := NewModel("m")
	model.Meshes = []*Mesh{boxMesh(math3d.Zero3(), math3d.V3(1, 1, 1)), boxMesh(math3d.Zero3(), math3d.V3(2, 2, 2))}

	model.EnableShadows()

	for i, mesh := range model.Meshes {
		if !mesh.CastShadow || !mesh.ReceiveShadow {
			t.Errorf("mesh %d shadows not enabled", i)
		}
	}
}

func TestTraverseMaterials(t *testing.T) {
	model := NewModel("m")
	model.Meshes = []*Mesh{boxMesh(math3d.Zero3(), math3d.V3(1, 1, 1)), boxMesh(math3d.Zero3(), math3d.V3(2, 2, 2))}

	model.TraverseMaterials(func(m *Material) { m.SetOpacity(0.25) })

	for i, mesh := range model.Meshes {
		if mesh.Materials[0].Opacity != 0.25 {
			t.Errorf("mesh %d opacity = %v, want 0.25", i, mesh.Materials[0].Opacity)
		}
	}
}
