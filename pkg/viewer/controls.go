package viewer

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

// Orbit limits.
const (
	minOrbitDistance = 1
	maxOrbitDistance = 50
	minPolarAngle    = 1e-3
	maxPolarAngle    = math.Pi / 2
)

// Input gains.
const (
	dragImpulse     = 0.03 // Radians of velocity per dragged cell
	keyImpulse      = 0.05 // Radians of velocity per key press
	zoomImpulse     = 0.04 // Log-distance velocity per zoom step
	autoRotateSpeed = 2.0  // One orbit every 30s at speed 1
)

// orbitAxis is one damped degree of freedom. A critically damped spring
// pulls its velocity back to zero.
type orbitAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

func newOrbitAxis(fps int) orbitAxis {
	return orbitAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// step returns this frame's motion and decays the velocity.
func (a *orbitAxis) step() float64 {
	v := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	if math.Abs(a.Velocity) < 1e-6 && math.Abs(a.velAccel) < 1e-6 {
		a.Velocity, a.velAccel = 0, 0
	}
	return v
}

func (a *orbitAxis) stop() {
	a.Velocity, a.velAccel = 0, 0
}

// OrbitControls moves a camera on a sphere around Target. Drag and zoom
// input adds velocity, which decays every Update.
type OrbitControls struct {
	Target     math3d.Vec3
	AutoRotate bool

	camera    *render.Camera
	fps       int
	spherical math3d.Spherical

	theta, phi, zoom orbitAxis
}

// NewOrbitControls creates controls for camera, orbiting the origin.
func NewOrbitControls(camera *render.Camera, fps int) *OrbitControls {
	c := &OrbitControls{
		camera: camera,
		fps:    fps,
		theta:  newOrbitAxis(fps),
		phi:    newOrbitAxis(fps),
		zoom:   newOrbitAxis(fps),
	}
	c.Sync()
	return c
}

// Sync re-reads the camera position relative to Target and stops any
// motion in progress.
func (c *OrbitControls) Sync() {
	c.spherical = math3d.SphericalFromVec3(c.camera.Position.Sub(c.Target))
	c.theta.stop()
	c.phi.stop()
	c.zoom.stop()
}

// Place moves the camera to pos, aims at target and updates the controls.
func (c *OrbitControls) Place(pos, target math3d.Vec3) {
	c.camera.SetPosition(pos)
	c.Target = target
	c.Sync()
	c.Update()
}

// Rotate adds angular velocity: dTheta around the vertical axis and dPhi
// toward or away from the pole.
func (c *OrbitControls) Rotate(dTheta, dPhi float64) {
	c.theta.Velocity += dTheta
	c.phi.Velocity += dPhi
}

// Drag turns a pointer move of dx, dy cells into rotation. Dragging right
// swings the camera left around the target.
func (c *OrbitControls) Drag(dx, dy int) {
	c.Rotate(-float64(dx)*dragImpulse, -float64(dy)*dragImpulse)
}

// Zoom moves toward the target for positive steps and away for negative.
func (c *OrbitControls) Zoom(steps float64) {
	c.zoom.Velocity -= steps * zoomImpulse
}

// Distance returns the camera distance from the target.
func (c *OrbitControls) Distance() float64 {
	return c.spherical.Radius
}

// Moving reports whether any velocity remains.
func (c *OrbitControls) Moving() bool {
	return c.theta.Velocity != 0 || c.phi.Velocity != 0 || c.zoom.Velocity != 0
}

// Update advances one frame: applies and damps velocities, clamps to the
// orbit limits and repositions the camera.
func (c *OrbitControls) Update() {
	if c.AutoRotate {
		c.spherical.Theta -= 2 * math.Pi / 60 / float64(c.fps) * autoRotateSpeed
	}
	c.spherical.Theta += c.theta.step()
	c.spherical.Phi += c.phi.step()
	c.spherical.Radius *= math.Exp(c.zoom.step())
	c.spherical = c.spherical.Clamp(minOrbitDistance, maxOrbitDistance, minPolarAngle, maxPolarAngle)

	c.camera.SetPosition(c.Target.Add(c.spherical.Vec3()))
	c.camera.LookAt(c.Target)
}
