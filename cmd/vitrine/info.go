package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/viewer"
)

var (
	infoLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")).Bold(true)
	infoValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2"))
)

func runInfo(ctx context.Context, w io.Writer, modelPath string) error {
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	model, err := models.NewGLTFLoader().Load(ctx, modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	bounds := model.LocalBounds()
	size, center := bounds.Size(), bounds.Center()
	materials := 0
	model.TraverseMaterials(func(*models.Material) { materials++ })

	rows := [][2]string{
		{"File", filepath.Base(modelPath)},
		{"Format", strings.ToUpper(strings.TrimPrefix(filepath.Ext(modelPath), "."))},
		{"Size", fmt.Sprintf("%.2f KB", float64(info.Size())/1024)},
		{},
		{"Meshes", fmt.Sprint(len(model.Meshes))},
		{"Materials", fmt.Sprint(materials)},
		{"Vertices", fmt.Sprint(model.VertexCount())},
		{"Triangles", fmt.Sprint(model.TriangleCount())},
		{},
		{"Bounds Min", formatVec(bounds.Min)},
		{"Bounds Max", formatVec(bounds.Max)},
		{"Dimensions", fmt.Sprintf("%.3f x %.3f x %.3f", size.X, size.Y, size.Z)},
		{"Center", formatVec(center)},
	}

	if _, scale, err := model.FitToSpan(viewer.FitSpan); err == nil {
		rows = append(rows, [2]string{"Fit Scale", fmt.Sprintf("%.4f", scale)})
	}
	if model.Texture != nil {
		b := model.Texture.Bounds()
		rows = append(rows, [2]string{}, [2]string{"Texture", fmt.Sprintf("embedded (%dx%d)", b.Dx(), b.Dy())})
	}

	var out strings.Builder
	for _, r := range rows {
		if r[0] == "" {
			out.WriteString("\n")
			continue
		}
		out.WriteString(infoLabel.Render(fmt.Sprintf("%-11s", r[0]+":")) + " " + infoValue.Render(r[1]) + "\n")
	}
	_, err = io.WriteString(w, out.String())
	return err
}

func formatVec(v math3d.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
