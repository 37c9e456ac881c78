package viewer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// boxIndices uses CCW winding seen from outside.
var boxIndices = []uint16{
	4, 5, 6, 4, 6, 7,
	1, 0, 3, 1, 3, 2,
	5, 1, 2, 5, 2, 6,
	0, 4, 7, 0, 7, 3,
	7, 6, 2, 7, 2, 3,
	0, 1, 5, 0, 5, 4,
}

// writeBoxGLB saves a box of the given size whose node is translated by
// offset, with a half-transparent red material.
func writeBoxGLB(t *testing.T, size, offset math3d.Vec3) string {
	t.Helper()

	hx, hy, hz := float32(size.X/2), float32(size.Y/2), float32(size.Z/2)
	positions := [][3]float32{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, positions)
	idx := modeler.WriteIndices(doc, boxIndices)

	doc.Materials = []*gltf.Material{{
		Name: "Red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}}
	prim := &gltf.Primitive{Indices: gltf.Index(idx), Material: gltf.Index(0)}
	prim.Attributes = map[string]int{gltf.POSITION: pos}
	doc.Meshes = []*gltf.Mesh{{Name: "Box", Primitives: []*gltf.Primitive{prim}}}

	doc.Nodes = []*gltf.Node{{
		Name:        "Box",
		Mesh:        gltf.Index(0),
		Translation: [3]float64{offset.X, offset.Y, offset.Z},
	}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "box.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

// newTestApp creates an app on an 80x24 terminal for path.
func newTestApp(path string) *App {
	return New(Options{
		ModelPath: path,
		Settings:  DefaultSettings(),
		Width:     80,
		Height:    24,
	}, nil)
}

// finishLoad starts the load and applies its result, as Run would.
func finishLoad(t *testing.T, a *App) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Start(ctx)
	for range a.progress {
	}
	select {
	case res := <-a.done:
		a.handleLoadResult(res)
	case <-ctx.Done():
		t.Fatal("load did not finish")
	}
}

func assertVecNear(t *testing.T, want, got math3d.Vec3, eps float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, eps, "x")
	require.InDelta(t, want.Y, got.Y, eps, "y")
	require.InDelta(t, want.Z, got.Z, eps, "z")
}
