package viewer

import (
	"context"
	"fmt"
	"io"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/vitrine/pkg/render"
)

// action is a keyboard command.
type action int

const (
	actionNone action = iota
	actionQuit
	actionFocusNext
	actionFocusPrev
	actionDecrease
	actionIncrease
	actionActivate
	actionTogglePanel
	actionResetView
	actionZoomIn
	actionZoomOut
	actionOrbitLeft
	actionOrbitRight
	actionOrbitUp
	actionOrbitDown
)

// keymap maps key names, as understood by uv.KeyPressEvent.MatchString,
// to actions.
var keymap = []struct {
	keys []string
	act  action
}{
	{[]string{"esc", "ctrl+c"}, actionQuit},
	{[]string{"shift+tab"}, actionFocusPrev},
	{[]string{"tab", "down", "j"}, actionFocusNext},
	{[]string{"up", "k"}, actionFocusPrev},
	{[]string{"left", "h"}, actionDecrease},
	{[]string{"right", "l"}, actionIncrease},
	{[]string{"enter", "space"}, actionActivate},
	{[]string{"p"}, actionTogglePanel},
	{[]string{"r"}, actionResetView},
	{[]string{"+", "="}, actionZoomIn},
	{[]string{"-", "_"}, actionZoomOut},
	{[]string{"a"}, actionOrbitLeft},
	{[]string{"d"}, actionOrbitRight},
	{[]string{"w"}, actionOrbitUp},
	{[]string{"s"}, actionOrbitDown},
}

// do runs an action and reports whether the viewer should quit.
func (a *App) do(act action) bool {
	switch act {
	case actionQuit:
		return true
	case actionFocusNext:
		a.panel.FocusNext()
	case actionFocusPrev:
		a.panel.FocusPrev()
	case actionDecrease:
		a.panel.Adjust(-1)
	case actionIncrease:
		a.panel.Adjust(1)
	case actionActivate:
		a.panel.Activate()
	case actionTogglePanel:
		a.panel.Toggle()
	case actionResetView:
		a.ResetView()
	case actionZoomIn:
		a.controls.Zoom(1)
	case actionZoomOut:
		a.controls.Zoom(-1)
	case actionOrbitLeft:
		a.controls.Rotate(keyImpulse, 0)
	case actionOrbitRight:
		a.controls.Rotate(-keyImpulse, 0)
	case actionOrbitUp:
		a.controls.Rotate(0, -keyImpulse)
	case actionOrbitDown:
		a.controls.Rotate(0, keyImpulse)
	}
	return false
}

// handleEvent dispatches a terminal event and reports whether to quit.
func (a *App) handleEvent(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		a.Resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		for _, k := range keymap {
			if ev.MatchString(k.keys...) {
				return a.do(k.act)
			}
		}

	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft && a.click(ev.X, ev.Y) {
			a.ResetView()
		}

	case uv.MouseReleaseEvent:
		a.dragging = false

	case uv.MouseMotionEvent:
		if a.dragging {
			a.controls.Drag(ev.X-a.lastX, ev.Y-a.lastY)
			a.lastX, a.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			a.controls.Zoom(1)
		case uv.MouseWheelDown:
			a.controls.Zoom(-1)
		}
	}
	return false
}

// frame advances the controls, renders and presents one frame, then draws
// the HUD over it.
func (a *App) frame(hud io.Writer) error {
	a.controls.Update()
	a.viewport.Render()
	if err := a.viewport.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	a.hud.UpdateFPS()
	if hud == nil {
		return nil
	}
	cols, rows := a.viewport.Size()
	return a.hud.Render(hud, cols, rows, a.panel, &a.loading)
}

// Run drives the viewer until ctx is done, the event channel closes or the
// user quits. Every frame is drawn on screen, with the HUD written to hud.
// Run is the only goroutine that touches the App.
func (a *App) Run(ctx context.Context, events <-chan uv.Event, screen render.Display, hud io.Writer) error {
	a.viewport.Attach(screen)
	if a.done == nil && a.model == nil && a.loading.State == LoadingActive {
		a.Start(ctx)
	}

	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				a.log.Info("quit requested")
				return nil
			}

		case p, ok := <-a.progress:
			if !ok {
				a.progress = nil
				continue
			}
			a.handleProgress(p)

		case res, ok := <-a.done:
			a.done = nil
			if ok {
				a.handleLoadResult(res)
			}

		case s := <-a.updates:
			a.ApplySettings(s)

		case <-ticker.C:
			if err := a.frame(hud); err != nil {
				a.log.Error("frame failed", zap.Error(err))
				return err
			}
		}
	}
}
