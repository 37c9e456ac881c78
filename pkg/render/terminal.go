package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (r *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < r.Width; col++ {
			topColor := r.GetPixel(col, topY)
			botColor := r.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// Display is a screen that can flush drawn cells to the terminal.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalRenderer presents a framebuffer on a terminal using half blocks.
type TerminalRenderer struct {
	screen        Display
	width, height int
}

// NewTerminalRenderer creates a presenter for a terminal of the given size
// in cells.
func NewTerminalRenderer(screen Display, width, height int) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, width: width, height: height}
}

// Resize updates the terminal size in cells.
func (t *TerminalRenderer) Resize(width, height int) {
	t.width, t.height = width, height
}

// FramebufferSize returns the framebuffer dimensions matching the terminal.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Render draws the framebuffer onto the screen buffer.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.screen, uv.Rect(0, 0, t.width, t.height))
}

// Flush writes the pending screen changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.screen.Display()
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
