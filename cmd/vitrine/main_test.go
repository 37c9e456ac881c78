package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/vitrine/pkg/viewer"
)

func writeTriangleGLB(t *testing.T) string {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	prim := &gltf.Primitive{Indices: gltf.Index(idx)}
	prim.Attributes = map[string]int{gltf.POSITION: pos}
	doc.Meshes = []*gltf.Mesh{{Name: "Tri", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "Tri", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestRunInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := runInfo(context.Background(), &buf, writeTriangleGLB(t)); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	// Collapse the label padding.
	out := strings.Join(strings.Fields(ansi.Strip(buf.String())), " ")

	for _, want := range []string{
		"tri.glb",
		"GLB",
		"Triangles: 1",
		"Dimensions: 2.000 x 1.000 x 0.000",
		"Fit Scale: 1.5000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInfoMissingFile(t *testing.T) {
	err := runInfo(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.glb"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunOptionsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitrine.toml")
	data := "model = \"from-file.glb\"\nfps = 24\n[settings]\nopacity = 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		opts      runOptions
		wantModel string
		wantFPS   int
		wantErr   bool
	}{
		{"defaults", runOptions{fps: 60}, viewer.DefaultModelPath, 60, false},
		{"file", runOptions{fps: 60, configPath: path}, "from-file.glb", 24, false},
		{"flags win", runOptions{fps: 30, fpsSet: true, modelPath: "arg.glb", configPath: path}, "arg.glb", 30, false},
		{"bad fps", runOptions{fps: 0}, "", 0, true},
		{"fps too high", runOptions{fps: 2_000_000_000, fpsSet: true}, "", 0, true},
		{"missing file", runOptions{fps: 60, configPath: path + ".nope"}, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.opts.config()
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("config: %v", err)
			}
			if cfg.Model != tt.wantModel {
				t.Errorf("Model = %q, want %q", cfg.Model, tt.wantModel)
			}
			if cfg.FPS != tt.wantFPS {
				t.Errorf("FPS = %d, want %d", cfg.FPS, tt.wantFPS)
			}
		})
	}
}

func TestRunSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	opts := snapshotOptions{width: 40, height: 12}
	if err := runSnapshot(context.Background(), writeTriangleGLB(t), out, opts); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 24 {
		t.Errorf("png size = %dx%d, want 40x24", cfg.Width, cfg.Height)
	}
}

func TestRunSnapshotErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	if err := runSnapshot(context.Background(), writeTriangleGLB(t), out, snapshotOptions{}); err == nil {
		t.Error("Expected error for zero size")
	}
	missing := filepath.Join(t.TempDir(), "missing.glb")
	if err := runSnapshot(context.Background(), missing, out, snapshotOptions{width: 8, height: 8}); err == nil {
		t.Error("Expected error for missing model")
	}
}

func TestRunRejectsWatchWithoutConfig(t *testing.T) {
	if err := run(context.Background(), runOptions{fps: 60, watch: true}); err == nil {
		t.Error("Expected error for --watch without --config")
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"fps", "config", "watch", "log", "debug"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
	for _, name := range []string{"info", "snapshot"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("missing %s subcommand", name)
		}
	}
}
