package render

// Renderer draws a Scene into a framebuffer from a camera.
type Renderer struct {
	fb   *Framebuffer
	rast *Rasterizer

	// ShadowsEnabled turns shadow mapping on for lights that cast shadows.
	ShadowsEnabled bool

	shadows map[*DirectionalLight]*ShadowMap
}

// NewRenderer creates a renderer drawing into fb.
func NewRenderer(fb *Framebuffer) *Renderer {
	return &Renderer{
		fb:             fb,
		rast:           NewRasterizer(NewCamera(), fb),
		ShadowsEnabled: true,
		shadows:        make(map[*DirectionalLight]*ShadowMap),
	}
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Stats returns the culling statistics of the last frame.
func (r *Renderer) Stats() CullingStats {
	return r.rast.CullingStats
}

// Resize resizes the framebuffer and depth buffer.
func (r *Renderer) Resize(width, height int) {
	r.fb.Resize(width, height)
	r.rast.Resize()
}

// Render draws one frame: background, shadow maps, opaque faces, then
// translucent faces.
func (r *Renderer) Render(scene *Scene, camera *Camera) {
	r.rast.SetCamera(camera)
	r.rast.InvalidateFrustum()
	r.rast.ResetCullingStats()

	r.clearBackground(scene.Background)
	r.rast.ClearDepth()

	lt := newLighting(scene, r.updateShadows(scene))

	prepared := make([]preparedObject, 0, len(scene.Objects))
	for _, obj := range scene.Objects {
		if p, ok := r.rast.prepare(obj, lt); ok {
			prepared = append(prepared, p)
		}
	}
	for _, p := range prepared {
		r.rast.drawPrepared(p, true)
	}
	for _, p := range prepared {
		r.rast.drawPrepared(p, false)
	}
}

func (r *Renderer) clearBackground(bg Background) {
	if bg.Kind == BackgroundTexture && bg.Texture != nil {
		r.fb.DrawTexture(bg.Texture)
		return
	}
	r.fb.Clear(ColorFromColorful(bg.Color))
}

// updateShadows refreshes the shadow map of every shadow-casting light and
// returns the maps in use this frame.
func (r *Renderer) updateShadows(scene *Scene) map[*DirectionalLight]*ShadowMap {
	active := make(map[*DirectionalLight]*ShadowMap)
	if !r.ShadowsEnabled {
		return active
	}
	for _, l := range scene.Directional {
		if !l.CastShadow {
			continue
		}
		size := ShadowMapSize(l.Shadow.MapSize, r.fb.Width, r.fb.Height)
		sm, ok := r.shadows[l]
		if !ok {
			sm = NewShadowMap(size)
			r.shadows[l] = sm
		}
		sm.Resize(size)
		sm.Update(l, scene.Objects)
		active[l] = sm
	}
	return active
}
