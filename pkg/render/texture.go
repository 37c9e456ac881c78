package render

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// WrapMode decides what texture coordinates outside [0,1] sample.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile
	WrapClamp                  // Stretch the edge texels
)

// wrap maps texel index i into [0, size).
func (m WrapMode) wrap(i, size int) int {
	if m == WrapClamp {
		return min(max(i, 0), size-1)
	}
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

// FilterMode selects how samples between texel centers are resolved.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture is an RGBA image sampled by UV. V runs bottom to top while
// rows are stored top to bottom.
type Texture struct {
	Width, Height int
	Pixels        []Color // Row-major, top row first, straight alpha

	WrapU, WrapV WrapMode
	FilterMode   FilterMode
}

// NewTexture creates a transparent texture that repeats in both
// directions and samples the nearest texel.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// TextureFromImage copies img into a texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	for y := range tex.Height {
		for x := range tex.Width {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			tex.Pixels[y*tex.Width+x] = Color(c)
		}
	}
	return tex
}

// NewVerticalGradientTexture creates a two-stop gradient from top (first
// row) to bottom (last row), blended in linear RGB. It clamps at the
// edges and filters bilinearly so any stretch stays smooth.
func NewVerticalGradientTexture(width, height int, top, bottom colorful.Color) *Texture {
	tex := NewTexture(width, height)
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp
	tex.FilterMode = FilterBilinear

	for y := range height {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		c := ColorFromColorful(top.BlendLinearRgb(bottom, t))
		for x := range width {
			tex.Pixels[y*width+x] = c
		}
	}
	return tex
}

// ColorFromColorful converts to an opaque 8-bit color.
func ColorFromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 255}
}

// SetPixel sets the texel at x, y. Out of range writes are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x >= 0 && x < t.Width && y >= 0 && y < t.Height {
		t.Pixels[y*t.Width+x] = c
	}
}

// GetPixel returns the texel at x, y, or transparent black out of range.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// texel returns the texel at x, y after wrapping.
func (t *Texture) texel(x, y int) Color {
	return t.Pixels[t.WrapV.wrap(y, t.Height)*t.Width+t.WrapU.wrap(x, t.Width)]
}

// Sample returns the color at u, v.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}

	// Texel space, with y flipped to row order.
	fx := u * float64(t.Width)
	fy := (1 - v) * float64(t.Height)

	if t.FilterMode != FilterBilinear {
		return t.texel(int(math.Floor(fx)), int(math.Floor(fy)))
	}

	// Interpolate between the four nearest texel centers.
	fx, fy = fx-0.5, fy-0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)

	top := lerpColor(t.texel(x0, y0), t.texel(x0+1, y0), tx)
	bottom := lerpColor(t.texel(x0, y0+1), t.texel(x0+1, y0+1), tx)
	return lerpColor(top, bottom, ty)
}

// lerpColor blends a toward b by t in [0,1].
func lerpColor(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
