package render

import (
	"image"
	"image/color"
	"testing"
)

// checker2x2 has red and green on the top row, blue and white below.
func checker2x2() *Texture {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGB(255, 0, 0))
	tex.SetPixel(1, 0, RGB(0, 255, 0))
	tex.SetPixel(0, 1, RGB(0, 0, 255))
	tex.SetPixel(1, 1, RGB(255, 255, 255))
	return tex
}

func TestTextureSampleNearest(t *testing.T) {
	tex := checker2x2()

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		// V runs bottom to top, so v near 1 reads the top row.
		{"top left", 0.25, 0.75, RGB(255, 0, 0)},
		{"top right", 0.75, 0.75, RGB(0, 255, 0)},
		{"bottom left", 0.25, 0.25, RGB(0, 0, 255)},
		{"repeat u", 1.25, 0.75, RGB(255, 0, 0)},
		{"repeat negative", -0.25, 0.25, RGB(255, 255, 255)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureSampleClamp(t *testing.T) {
	tex := checker2x2()
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp

	if got := tex.Sample(5, 5); got != RGB(0, 255, 0) {
		t.Errorf("clamped top right = %v", got)
	}
	if got := tex.Sample(-5, -5); got != RGB(0, 0, 255) {
		t.Errorf("clamped bottom left = %v", got)
	}
}

func TestTextureSampleBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, RGB(0, 0, 0))
	tex.SetPixel(1, 0, RGB(200, 100, 50))
	tex.WrapU = WrapClamp
	tex.FilterMode = FilterBilinear

	// Halfway between the two texel centers.
	got := tex.Sample(0.5, 0.5)
	if got != (Color{R: 100, G: 50, B: 25, A: 255}) {
		t.Errorf("midpoint = %v", got)
	}
	if got := tex.Sample(0.25, 0.5); got != RGB(0, 0, 0) {
		t.Errorf("texel center = %v", got)
	}
}

func TestTextureFromImageKeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(3, 4, 5, 6))
	img.SetNRGBA(3, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(4, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	tex := TextureFromImage(img)

	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(0, 0); got != (Color{R: 200, G: 100, B: 50, A: 128}) {
		t.Errorf("translucent texel = %v", got)
	}
	if got := tex.GetPixel(1, 1); got != RGB(10, 20, 30) {
		t.Errorf("opaque texel = %v", got)
	}
}

func TestEmptyTextureSamplesTransparent(t *testing.T) {
	if got := NewTexture(0, 0).Sample(0.5, 0.5); got != (Color{}) {
		t.Errorf("empty sample = %v", got)
	}
}
