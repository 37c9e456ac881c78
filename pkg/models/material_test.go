package models

import (
	"testing"
)

// TestMaterialOpacity verifies Opacity folds into the effective alpha.
func TestMaterialOpacity(t *testing.T) {
	m := DefaultMaterial()

	if m.Alpha() != 1 {
		t.Errorf("default alpha = %f, want 1", m.Alpha())
	}
	if m.Transparent {
		t.Error("default material should be opaque")
	}

	m.SetOpacity(0.5)
	if m.Alpha() != 0.5 {
		t.Errorf("alpha = %f, want 0.5", m.Alpha())
	}
	if !m.Transparent {
		t.Error("material with opacity 0.5 should be transparent")
	}

	m.SetOpacity(1)
	if m.Transparent {
		t.Error("material should be opaque again at opacity 1")
	}
}

// TestMaterialOpacityWithBlendedBase verifies asset alpha and opacity combine.
func TestMaterialOpacityWithBlendedBase(t *testing.T) {
	m := Material{BaseColor: [4]float64{1, 1, 1, 0.5}}
	m.SetOpacity(1)

	if !m.Transparent {
		t.Error("material with base alpha 0.5 should be transparent")
	}
	if m.Alpha() != 0.5 {
		t.Errorf("alpha = %f, want 0.5", m.Alpha())
	}
}

// TestFaceMaterialIndex verifies per-face material assignment.
func TestFaceMaterialIndex(t *testing.T) {
	mesh := NewMesh("test")

	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
		{Name: "blue", BaseColor: [4]float64{0, 0, 1, 1}},
	}

	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
		{V: [3]int{6, 7, 8}, Material: 2},
		{V: [3]int{9, 10, 11}, Material: -1},
	}

	if mesh.GetFaceMaterial(0) != 0 {
		t.Errorf("Face 0 should have material 0, got %d", mesh.GetFaceMaterial(0))
	}
	if mesh.GetFaceMaterial(3) != -1 {
		t.Errorf("Face 3 should have material -1, got %d", mesh.GetFaceMaterial(3))
	}

	if mat := mesh.GetMaterial(0); mat == nil || mat.Name != "red" {
		t.Errorf("GetMaterial(0) should return 'red' material")
	}
	if mat := mesh.GetMaterial(-1); mat != nil {
		t.Errorf("GetMaterial(-1) should return nil")
	}
	if mat := mesh.GetMaterial(99); mat != nil {
		t.Errorf("GetMaterial(99) should return nil for out-of-bounds")
	}
}
