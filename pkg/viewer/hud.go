package viewer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

// LoadingState is the phase shown by the loading indicator.
type LoadingState int

const (
	LoadingActive LoadingState = iota
	LoadingDone
	LoadingFailed
)

// LoadingIndicator is the terminal stand-in for the page's loading overlay.
type LoadingIndicator struct {
	State   LoadingState
	Percent int // -1 while the size is unknown
	Lines   []string
}

func newLoadingIndicator() LoadingIndicator {
	return LoadingIndicator{State: LoadingActive, Percent: -1, Lines: []string{"Loading model…"}}
}

// SetProgress updates the percentage while loading.
func (l *LoadingIndicator) SetProgress(p Progress) {
	if l.State != LoadingActive {
		return
	}
	l.Percent = p.Percent()
	if l.Percent >= 0 {
		l.Lines = []string{fmt.Sprintf("Loading model… %d%%", l.Percent)}
	}
}

// Fail replaces the content with the failure message.
func (l *LoadingIndicator) Fail(path string) {
	l.State = LoadingFailed
	l.Lines = []string{
		"✗ Failed to load model",
		fmt.Sprintf("Check that %s exists", path),
	}
}

// Hide removes the indicator.
func (l *LoadingIndicator) Hide() {
	l.State = LoadingDone
	l.Lines = nil
}

// Visible reports whether the indicator is drawn.
func (l *LoadingIndicator) Visible() bool {
	return l.State != LoadingDone
}

// hudStyles are the lipgloss styles of the overlay.
type hudStyles struct {
	fps      lipgloss.Style
	title    lipgloss.Style
	polys    lipgloss.Style
	hint     lipgloss.Style
	loading  lipgloss.Style
	failed   lipgloss.Style
	detail   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	focused  lipgloss.Style
	swatch   lipgloss.Style
	panelBox lipgloss.Style
}

func defaultHUDStyles() hudStyles {
	bg := lipgloss.Color("#000000")
	base := lipgloss.NewStyle().Background(bg)
	return hudStyles{
		fps:      base.Foreground(lipgloss.Color("#50fa7b")),
		title:    base.Foreground(lipgloss.Color("#ffffff")).Bold(true),
		polys:    base.Foreground(lipgloss.Color("#8be9fd")).Bold(true),
		hint:     base.Foreground(lipgloss.Color("#f1fa8c")).Faint(true),
		loading:  base.Foreground(lipgloss.Color("#ffffff")).Bold(true).Padding(0, 1),
		failed:   base.Foreground(lipgloss.Color("#ff6b6b")).Bold(true).Padding(0, 1),
		detail:   base.Foreground(lipgloss.Color("#c0c0c0")).Padding(0, 1),
		label:    base.Foreground(lipgloss.Color("#c0c0c0")),
		value:    base.Foreground(lipgloss.Color("#ffffff")),
		focused:  base.Foreground(lipgloss.Color("#ffd166")).Bold(true),
		swatch:   lipgloss.NewStyle(),
		panelBox: base.Padding(0, 1),
	}
}

// HUD renders the overlay: FPS and model info on the top row, the loading
// indicator in the middle, the control panel on the right and a key hint
// on the bottom row.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	styles hudStyles
}

// NewHUD creates a HUD with the default styles.
func NewHUD() *HUD {
	return &HUD{
		fpsTime: time.Now(),
		styles:  defaultHUDStyles(),
	}
}

// SetModel sets the model shown in the title.
func (h *HUD) SetModel(filename string, polyCount int) {
	h.filename = filename
	h.polyCount = polyCount
}

// UpdateFPS counts a frame. Call it once per rendered frame.
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// moveTo positions the cursor (1-based).
func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

const clearLine = "\x1b[2K"

// Render draws the overlay on top of the frame already on screen.
func (h *HUD) Render(w io.Writer, width, height int, panel *Panel, loading *LoadingIndicator) error {
	var b strings.Builder
	st := h.styles

	b.WriteString(moveTo(1, 1) + clearLine)
	b.WriteString(moveTo(height, 1) + clearLine)

	// Top row: FPS, file name, polygon count.
	b.WriteString(moveTo(1, 1) + st.fps.Render(fmt.Sprintf(" %.0f FPS ", h.fps)))
	if h.filename != "" {
		title := st.title.Render(" " + h.filename + " ")
		b.WriteString(moveTo(1, max((width-lipgloss.Width(title))/2, 1)) + title)
		polys := st.polys.Render(fmt.Sprintf(" %d polys ", h.polyCount))
		b.WriteString(moveTo(1, max(width-lipgloss.Width(polys)+1, 1)) + polys)
	}

	if loading != nil && loading.Visible() {
		h.renderLoading(&b, width, height, loading)
	}
	if panel != nil && panel.Visible {
		h.renderPanel(&b, width, panel)
	}

	hint := st.hint.Render(" tab: focus  ←/→: adjust  enter: toggle  p: panel  r: reset  esc: quit ")
	b.WriteString(moveTo(height, 1) + hint)

	_, err := io.WriteString(w, b.String())
	return err
}

func (h *HUD) renderLoading(b *strings.Builder, width, height int, l *LoadingIndicator) {
	top := max(height/2-len(l.Lines)/2, 2)
	for i, line := range l.Lines {
		style := h.styles.loading
		switch {
		case l.State == LoadingFailed && i == 0:
			style = h.styles.failed
		case l.State == LoadingFailed:
			style = h.styles.detail
		}
		out := style.Render(line)
		b.WriteString(moveTo(top+i, max((width-lipgloss.Width(out))/2, 1)) + out)
	}
}

func (h *HUD) renderPanel(b *strings.Builder, width int, p *Panel) {
	st := h.styles
	lines := make([]string, 0, len(p.Controls()))
	focused := p.Focused()
	for _, c := range p.Controls() {
		marker, label := "  ", st.label
		if c == focused {
			marker, label = "▸ ", st.focused
		}
		line := label.Render(fmt.Sprintf("%s%-18s", marker, c.Label)) + st.value.Render(fmt.Sprintf(" %-8s", c.Value()))
		if c.Kind == KindColor {
			line += st.swatch.Background(lipgloss.Color(c.Value())).Render("  ")
		}
		lines = append(lines, st.panelBox.Render(line))
	}

	panelWidth := 0
	for _, l := range lines {
		panelWidth = max(panelWidth, lipgloss.Width(l))
	}
	col := max(width-panelWidth+1, 1)
	for i, l := range lines {
		b.WriteString(moveTo(3+i, col) + l)
	}
}
