package render

import (
	"github.com/taigrr/vitrine/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0. Points on the side
// the normal points to have a positive distance.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Distance returns the signed distance from the plane to point. The
// normal must have unit length.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the six clip planes of a view-projection, ordered left,
// right, bottom, top, near, far, with normals facing inward.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts the clip planes of a column-major
// view-projection matrix (Gribb/Hartmann). Each pair of planes is the w
// row plus and minus the x, y or z row.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) [4]float64 {
		return [4]float64{m[i], m[i+4], m[i+8], m[i+12]}
	}
	w := row(3)

	var f Frustum
	for axis := range 3 {
		r := row(axis)
		f.Planes[2*axis] = clipPlane(w, r, 1)
		f.Planes[2*axis+1] = clipPlane(w, r, -1)
	}
	return f
}

func clipPlane(w, r [4]float64, sign float64) Plane {
	n := math3d.V3(w[0]+sign*r[0], w[1]+sign*r[1], w[2]+sign*r[2])
	d := w[3] + sign*r[3]
	l := n.Len()
	if l == 0 {
		return Plane{Normal: n, D: d}
	}
	return Plane{Normal: n.Scale(1 / l), D: d / l}
}

// IntersectAABB reports whether any part of box may be inside the
// frustum. Per plane it tests the corner furthest along the normal; if
// even that corner is outside, so is the box. Empty boxes are never
// visible.
func (f Frustum) IntersectAABB(box math3d.AABB) bool {
	if box.IsEmpty() {
		return false
	}
	for _, p := range f.Planes {
		corner := box.Min
		if p.Normal.X >= 0 {
			corner.X = box.Max.X
		}
		if p.Normal.Y >= 0 {
			corner.Y = box.Max.Y
		}
		if p.Normal.Z >= 0 {
			corner.Z = box.Max.Z
		}
		if p.Distance(corner) < 0 {
			return false
		}
	}
	return true
}

// Frustum returns the camera's current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
