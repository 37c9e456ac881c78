package viewer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

func newTestControls() (*OrbitControls, *render.Camera) {
	cam := render.NewCamera()
	return NewOrbitControls(cam, 60), cam
}

func TestControlsStartFromCamera(t *testing.T) {
	c, _ := newTestControls()
	assert.InDelta(t, math.Sqrt(75), c.Distance(), 1e-9)
	assert.False(t, c.Moving())
}

func TestDampingSettles(t *testing.T) {
	c, cam := newTestControls()
	c.Rotate(0.3, 0.1)
	assert.True(t, c.Moving())

	start := cam.Position
	for range 600 {
		c.Update()
	}

	assert.False(t, c.Moving())
	assert.NotEqual(t, start, cam.Position)

	settled := cam.Position
	c.Update()
	assert.Equal(t, settled, cam.Position)
}

func TestDistanceLimits(t *testing.T) {
	c, _ := newTestControls()
	for range 200 {
		c.Zoom(10)
		c.Update()
	}
	assert.InDelta(t, minOrbitDistance, c.Distance(), 1e-9)

	for range 200 {
		c.Zoom(-10)
		c.Update()
	}
	assert.InDelta(t, maxOrbitDistance, c.Distance(), 1e-9)
}

func TestPolarLimit(t *testing.T) {
	c, cam := newTestControls()
	for range 100 {
		c.Rotate(0, 1)
		c.Update()
	}

	// Never below the horizon of the target.
	assert.GreaterOrEqual(t, cam.Position.Y, -1e-9)

	for range 100 {
		c.Rotate(0, -1)
		c.Update()
	}
	assert.Greater(t, cam.Position.Y, 0.0)
}

func TestPlaceAimsAtTarget(t *testing.T) {
	c, cam := newTestControls()
	c.Rotate(1, 0)

	c.Place(math3d.V3(2, 3, 4), math3d.V3(0, 1, 0))

	assertVecNear(t, math3d.V3(2, 3, 4), cam.Position, 1e-9)
	assert.False(t, c.Moving())
	fwd := cam.Forward()
	want := math3d.V3(0, 1, 0).Sub(cam.Position).Normalize()
	assertVecNear(t, want, fwd, 1e-9)
}

func TestAutoRotateOrbits(t *testing.T) {
	c, cam := newTestControls()
	c.AutoRotate = true
	before := cam.Position
	dist := c.Distance()

	c.Update()

	assert.NotEqual(t, before, cam.Position)
	assert.InDelta(t, dist, c.Distance(), 1e-9)
	assert.InDelta(t, before.Y, cam.Position.Y, 1e-9)
}

func TestDragDirection(t *testing.T) {
	c, _ := newTestControls()
	c.Drag(10, 0)
	assert.Less(t, c.theta.Velocity, 0.0)
	assert.Zero(t, c.phi.Velocity)
}
