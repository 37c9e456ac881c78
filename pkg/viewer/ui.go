package viewer

import (
	"fmt"
	"math"
	"strings"
)

// rangeStep is the increment of one range adjustment.
const rangeStep = 0.05

// colorPalette is what color controls cycle through.
var colorPalette = []string{
	"#ffffff", "#f0f0f0", "#c0c0c0", "#808080", "#404040", "#202020", "#000000",
	"#ff6b6b", "#ffd166", "#06d6a0", "#118ab2", "#3a4a6b", "#ffb86c", "#bd93f9",
}

// refreshTarget names what must be updated after a settings change.
type refreshTarget int

const (
	refreshLights refreshTarget = iota
	refreshBackground
	refreshMaterials
	refreshControls
)

// binding connects a control ID to its settings field.
type binding struct {
	id      string
	apply   func(s *Settings, delta int)
	show    func(s *Settings) string
	refresh refreshTarget
}

func colorBinding(id string, field func(*Settings) *string, target refreshTarget) binding {
	return binding{
		id:      id,
		apply:   func(s *Settings, delta int) { f := field(s); *f = cycleColor(*f, delta) },
		show:    func(s *Settings) string { return *field(s) },
		refresh: target,
	}
}

func rangeBinding(id string, field func(*Settings) *float64, target refreshTarget) binding {
	return binding{
		id:      id,
		apply:   func(s *Settings, delta int) { f := field(s); *f = stepRange(*f, delta) },
		show:    func(s *Settings) string { return fmt.Sprintf("%.2f", *field(s)) },
		refresh: target,
	}
}

func toggleBinding(id string, field func(*Settings) *bool, target refreshTarget) binding {
	return binding{
		id:      id,
		apply:   func(s *Settings, _ int) { f := field(s); *f = !*f },
		show:    func(s *Settings) string { return checkbox(*field(s)) },
		refresh: target,
	}
}

// bindings lists every control the viewer knows, in panel order.
var bindings = []binding{
	colorBinding("ambient-color", func(s *Settings) *string { return &s.AmbientColor }, refreshLights),
	rangeBinding("ambient-intensity", func(s *Settings) *float64 { return &s.AmbientIntensity }, refreshLights),
	colorBinding("key-color", func(s *Settings) *string { return &s.KeyColor }, refreshLights),
	rangeBinding("key-intensity", func(s *Settings) *float64 { return &s.KeyIntensity }, refreshLights),
	colorBinding("fill-color", func(s *Settings) *string { return &s.FillColor }, refreshLights),
	rangeBinding("fill-intensity", func(s *Settings) *float64 { return &s.FillIntensity }, refreshLights),
	{
		id: "background-mode",
		apply: func(s *Settings, delta int) {
			s.BackgroundMode = cycleOption([]string{BackgroundModeSolid, BackgroundModeGradient}, s.BackgroundMode, delta)
		},
		show:    func(s *Settings) string { return s.BackgroundMode },
		refresh: refreshBackground,
	},
	colorBinding("background-color", func(s *Settings) *string { return &s.BackgroundColor }, refreshBackground),
	colorBinding("gradient-top", func(s *Settings) *string { return &s.GradientTop }, refreshBackground),
	colorBinding("gradient-bottom", func(s *Settings) *string { return &s.GradientBottom }, refreshBackground),
	rangeBinding("opacity", func(s *Settings) *float64 { return &s.Opacity }, refreshMaterials),
	toggleBinding("shadows", func(s *Settings) *bool { return &s.Shadows }, refreshLights),
	toggleBinding("auto-rotate", func(s *Settings) *bool { return &s.AutoRotate }, refreshControls),
}

// Bind wires every known control present in panel to the settings record.
// IDs the panel lacks are skipped. It returns the number of controls wired.
func (a *App) Bind(panel *Panel) int {
	wired := 0
	for _, b := range bindings {
		c := panel.Control(b.id)
		if c == nil {
			continue
		}
		c.onChange = func(delta int) {
			b.apply(&a.settings, delta)
			a.refresh(b.refresh)
		}
		c.value = func() string { return b.show(&a.settings) }
		wired++
	}
	return wired
}

// refresh pushes the settings onto one part of the live scene.
func (a *App) refresh(target refreshTarget) {
	switch target {
	case refreshLights:
		a.lights.Refresh(a.settings)
	case refreshBackground:
		a.background.Refresh(a.settings)
	case refreshMaterials:
		a.refreshMaterials()
	case refreshControls:
		a.controls.AutoRotate = a.settings.AutoRotate
	}
}

// refreshAll pushes every setting onto the scene.
func (a *App) refreshAll() {
	for _, t := range []refreshTarget{refreshLights, refreshBackground, refreshMaterials, refreshControls} {
		a.refresh(t)
	}
}

func stepRange(v float64, delta int) float64 {
	v += float64(delta) * rangeStep
	// Keep two decimals so repeated steps land on exact values.
	v = math.Round(v*100) / 100
	return math.Max(0, math.Min(1, v))
}

func cycleOption(options []string, current string, delta int) string {
	n := len(options)
	if n == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[((i+delta)%n+n)%n]
		}
	}
	return options[0]
}

func cycleColor(current string, delta int) string {
	return cycleOption(colorPalette, strings.ToLower(current), delta)
}

func checkbox(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}
