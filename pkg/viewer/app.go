package viewer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/render"
)

// FitSpan is the size of the largest model dimension after fit-to-view.
const FitSpan = 3.0

// doubleClickWindow is the longest gap between the clicks of a double click.
const doubleClickWindow = 400 * time.Millisecond

// Options configures a new App.
type Options struct {
	ModelPath string
	FPS       int
	Settings  Settings

	// Terminal size in cells.
	Width, Height int

	// OnResize, when set, is called before the viewport follows a terminal
	// resize, so the terminal can clear and resize its own buffers.
	OnResize func(width, height int)
}

// App is the viewer state. It is owned by the goroutine running Run; the
// load task and the config watcher talk to it only through channels.
type App struct {
	settings  Settings
	modelPath string
	fps       int
	log       *zap.Logger

	viewport   *Viewport
	lights     *LightingRig
	background *BackgroundManager
	controls   *OrbitControls
	panel      *Panel
	hud        *HUD
	loading    LoadingIndicator

	model    *models.Model
	objects  []*render.Object
	textures map[*models.Material]*render.Texture

	progress <-chan Progress
	done     <-chan LoadResult
	updates  chan Settings

	onResize func(width, height int)

	dragging     bool
	lastX, lastY int
	lastClick    time.Time
	now          func() time.Time
}

// New creates the viewport, lights, background, controls and control panel
// and applies the initial settings. The model load starts with Start or Run.
func New(opts Options, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	opts.FPS = min(opts.FPS, MaxFPS)
	if opts.ModelPath == "" {
		opts.ModelPath = DefaultModelPath
	}

	vp := NewViewport(opts.Width, opts.Height)
	a := &App{
		settings:   opts.Settings,
		modelPath:  opts.ModelPath,
		fps:        opts.FPS,
		log:        logger,
		viewport:   vp,
		lights:     NewLightingRig(vp.Scene, opts.Settings),
		background: NewBackgroundManager(vp.Scene, opts.Settings),
		controls:   NewOrbitControls(vp.Camera, opts.FPS),
		panel:      DefaultPanel(),
		hud:        NewHUD(),
		loading:    newLoadingIndicator(),
		textures:   make(map[*models.Material]*render.Texture),
		updates:    make(chan Settings, 1),
		onResize:   opts.OnResize,
		now:        time.Now,
	}
	a.Bind(a.panel)
	a.refreshAll()
	return a
}

// Settings returns a copy of the current settings.
func (a *App) Settings() Settings {
	return a.settings
}

// Model returns the loaded model, or nil.
func (a *App) Model() *models.Model {
	return a.model
}

// Scene returns the scene being drawn.
func (a *App) Scene() *render.Scene {
	return a.viewport.Scene
}

// Camera returns the viewer camera.
func (a *App) Camera() *render.Camera {
	return a.viewport.Camera
}

// Panel returns the control panel.
func (a *App) Panel() *Panel {
	return a.panel
}

// Loading returns the loading indicator.
func (a *App) Loading() *LoadingIndicator {
	return &a.loading
}

// SettingsUpdates accepts replacement settings, for example from a
// watched config file. Run applies them between frames.
func (a *App) SettingsUpdates() chan<- Settings {
	return a.updates
}

// Start begins loading the model.
func (a *App) Start(ctx context.Context) {
	task := StartLoad(ctx, a.modelPath)
	a.progress, a.done = task.Progress, task.Done
	a.log.Info("loading model", zap.String("path", a.modelPath))
}

// ApplySettings replaces the settings record and refreshes everything.
func (a *App) ApplySettings(s Settings) {
	a.settings = s
	a.refreshAll()
	a.log.Info("settings applied")
}

func (a *App) handleProgress(p Progress) {
	a.loading.SetProgress(p)
	if pct := p.Percent(); pct >= 0 {
		a.log.Debug("loading", zap.Int("percent", pct))
	}
}

// handleLoadResult finishes a load: fit the model to view and add it to the
// scene, or show the failure in the loading indicator.
func (a *App) handleLoadResult(res LoadResult) {
	if res.Err != nil {
		a.loadFailed(res.Err)
		return
	}

	m := res.Model
	maxDim, scale, err := m.FitToSpan(FitSpan)
	if err != nil {
		a.loadFailed(err)
		return
	}
	m.EnableShadows()
	a.setModel(m)

	d := maxDim * scale * 2
	a.controls.Place(math3d.V3(d, d, d), math3d.Zero3())

	a.loading.Hide()
	a.hud.SetModel(filepath.Base(a.modelPath), m.TriangleCount())

	fields := []zap.Field{
		zap.String("path", a.modelPath),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("vertices", m.VertexCount()),
		zap.Float64("scale", scale),
	}
	if m.Texture != nil {
		b := m.Texture.Bounds()
		fields = append(fields, zap.Int("texture_width", b.Dx()), zap.Int("texture_height", b.Dy()))
	}
	a.log.Info("model loaded", fields...)
}

func (a *App) loadFailed(err error) {
	a.loading.Fail(a.modelPath)
	a.log.Error("failed to load model", zap.String("path", a.modelPath), zap.Error(err))
}

// setModel adds the model's meshes to the scene as render objects.
func (a *App) setModel(m *models.Model) {
	a.model = m
	transform := m.Transform()
	a.objects = a.objects[:0]
	for _, mesh := range m.Meshes {
		obj := render.NewObject(mesh)
		obj.Transform = transform
		obj.CastShadow = mesh.CastShadow
		obj.ReceiveShadow = mesh.ReceiveShadow
		a.objects = append(a.objects, obj)
	}
	a.viewport.Scene.Add(a.objects...)
	a.refreshMaterials()
}

// refreshMaterials applies the opacity to every material and rebuilds the
// surfaces the renderer draws.
func (a *App) refreshMaterials() {
	if a.model == nil {
		return
	}
	a.model.TraverseMaterials(func(mat *models.Material) {
		mat.SetOpacity(a.settings.Opacity)
	})
	for i, mesh := range a.model.Meshes {
		surfaces := make([]render.Surface, len(mesh.Materials))
		for j := range mesh.Materials {
			surfaces[j] = a.surface(&mesh.Materials[j])
		}
		a.objects[i].Surfaces = surfaces
	}
}

func (a *App) surface(mat *models.Material) render.Surface {
	s := render.Surface{
		Color: colorful.Color{R: mat.BaseColor[0], G: mat.BaseColor[1], B: mat.BaseColor[2]},
		Alpha: mat.Alpha(),
	}
	if mat.BaseMap != nil {
		tex, ok := a.textures[mat]
		if !ok {
			tex = render.TextureFromImage(mat.BaseMap)
			tex.FilterMode = render.FilterBilinear
			a.textures[mat] = tex
		}
		s.Texture = tex
	}
	return s
}

// ResetView frames the current model from (1,1,1) at twice its largest
// world dimension. The model itself does not move. Without a model it
// does nothing.
func (a *App) ResetView() {
	if a.model == nil {
		return
	}
	d := a.model.WorldBounds().Size().MaxComponent() * 2
	a.controls.Place(math3d.V3(d, d, d), math3d.Zero3())
	a.log.Debug("view reset", zap.Float64("distance", d))
}

// Resize follows a terminal resize.
func (a *App) Resize(width, height int) {
	if a.onResize != nil {
		a.onResize(width, height)
	}
	a.viewport.Resize(width, height)
}

// click registers a primary click at x, y and reports whether it completes
// a double click.
func (a *App) click(x, y int) bool {
	now := a.now()
	double := !a.lastClick.IsZero() && now.Sub(a.lastClick) <= doubleClickWindow
	if double {
		a.lastClick = time.Time{}
	} else {
		a.lastClick = now
	}
	a.dragging = true
	a.lastX, a.lastY = x, y
	return double
}
