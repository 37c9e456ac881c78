package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/render"
)

// Snapshot loads the model, frames it and renders one frame without a
// terminal. The framebuffer is owned by the app and reused by later frames.
func (a *App) Snapshot(ctx context.Context) (*render.Framebuffer, error) {
	a.Start(ctx)
	for p := range a.progress {
		a.handleProgress(p)
	}
	res, ok := <-a.done
	a.progress, a.done = nil, nil
	if !ok {
		return nil, errors.New("load ended without a result")
	}
	if res.Err != nil {
		a.loadFailed(res.Err)
		return nil, fmt.Errorf("load %s: %w", a.modelPath, res.Err)
	}

	a.handleLoadResult(res)
	if a.model == nil {
		return nil, fmt.Errorf("load %s: %w", a.modelPath, models.ErrNoGeometry)
	}

	a.controls.Update()
	a.viewport.Render()
	return a.viewport.Renderer.Framebuffer(), nil
}
