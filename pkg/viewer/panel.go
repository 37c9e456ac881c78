package viewer

// ControlKind is the input type of a control.
type ControlKind int

const (
	KindColor ControlKind = iota
	KindRange
	KindSelect
	KindCheckbox
	KindButton
)

func (k ControlKind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindRange:
		return "range"
	case KindSelect:
		return "select"
	case KindCheckbox:
		return "checkbox"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// Control is one named input in the control panel.
type Control struct {
	ID      string
	Label   string
	Kind    ControlKind
	Options []string // Choices for KindSelect

	onChange func(delta int)
	value    func() string
}

// Bound reports whether a handler has been wired to the control.
func (c *Control) Bound() bool {
	return c.onChange != nil
}

// Fire delivers an input event. Adjusting moves by delta steps, activating
// passes +1. Unbound controls ignore input.
func (c *Control) Fire(delta int) {
	if c.onChange != nil {
		c.onChange(delta)
	}
}

// Value returns the displayed value, or an empty string when unbound.
func (c *Control) Value() string {
	if c.value == nil {
		return ""
	}
	return c.value()
}

// Panel is the keyboard-driven control panel.
type Panel struct {
	Visible bool

	controls []*Control
	focus    int
}

// NewPanel creates a visible panel holding controls in display order.
func NewPanel(controls ...*Control) *Panel {
	return &Panel{Visible: true, controls: controls}
}

// DefaultPanel returns a panel with every viewer control.
func DefaultPanel() *Panel {
	return NewPanel(
		&Control{ID: "ambient-color", Label: "Ambient color", Kind: KindColor},
		&Control{ID: "ambient-intensity", Label: "Ambient intensity", Kind: KindRange},
		&Control{ID: "key-color", Label: "Key color", Kind: KindColor},
		&Control{ID: "key-intensity", Label: "Key intensity", Kind: KindRange},
		&Control{ID: "fill-color", Label: "Fill color", Kind: KindColor},
		&Control{ID: "fill-intensity", Label: "Fill intensity", Kind: KindRange},
		&Control{
			ID: "background-mode", Label: "Background", Kind: KindSelect,
			Options: []string{BackgroundModeSolid, BackgroundModeGradient},
		},
		&Control{ID: "background-color", Label: "Background color", Kind: KindColor},
		&Control{ID: "gradient-top", Label: "Gradient top", Kind: KindColor},
		&Control{ID: "gradient-bottom", Label: "Gradient bottom", Kind: KindColor},
		&Control{ID: "opacity", Label: "Opacity", Kind: KindRange},
		&Control{ID: "shadows", Label: "Shadows", Kind: KindCheckbox},
		&Control{ID: "auto-rotate", Label: "Auto-rotate", Kind: KindButton},
	)
}

// Controls returns the controls in display order.
func (p *Panel) Controls() []*Control {
	return p.controls
}

// Control returns the control with the given ID, or nil.
func (p *Panel) Control(id string) *Control {
	for _, c := range p.controls {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Focused returns the control with keyboard focus, or nil for an empty panel.
func (p *Panel) Focused() *Control {
	if len(p.controls) == 0 {
		return nil
	}
	return p.controls[p.focus]
}

// FocusNext moves focus down, wrapping at the end.
func (p *Panel) FocusNext() {
	if n := len(p.controls); n > 0 {
		p.focus = (p.focus + 1) % n
	}
}

// FocusPrev moves focus up, wrapping at the start.
func (p *Panel) FocusPrev() {
	if n := len(p.controls); n > 0 {
		p.focus = (p.focus - 1 + n) % n
	}
}

// Adjust steps the focused control. Checkboxes and buttons toggle.
func (p *Panel) Adjust(delta int) {
	if !p.Visible {
		return
	}
	if c := p.Focused(); c != nil {
		c.Fire(delta)
	}
}

// Activate presses the focused control.
func (p *Panel) Activate() {
	p.Adjust(1)
}

// Toggle shows or hides the panel.
func (p *Panel) Toggle() {
	p.Visible = !p.Visible
}
