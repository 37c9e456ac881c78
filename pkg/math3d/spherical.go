package math3d

import "math"

// Spherical is a point in spherical coordinates around an origin with +Y up.
// Theta is the azimuth around Y measured from +Z toward +X, and Phi is the
// polar angle measured down from +Y.
type Spherical struct {
	Radius float64
	Theta  float64
	Phi    float64
}

// SphericalFromVec3 converts an offset vector into spherical coordinates.
func SphericalFromVec3(v Vec3) Spherical {
	r := v.Len()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math.Atan2(v.X, v.Z),
		Phi:    math.Acos(clamp(v.Y/r, -1, 1)),
	}
}

// Vec3 converts back to a Cartesian offset.
func (s Spherical) Vec3() Vec3 {
	sinPhi := math.Sin(s.Phi)
	return Vec3{
		X: s.Radius * sinPhi * math.Sin(s.Theta),
		Y: s.Radius * math.Cos(s.Phi),
		Z: s.Radius * sinPhi * math.Cos(s.Theta),
	}
}

// Clamp limits the radius and polar angle to the given ranges.
func (s Spherical) Clamp(minRadius, maxRadius, minPhi, maxPhi float64) Spherical {
	s.Radius = clamp(s.Radius, minRadius, maxRadius)
	s.Phi = clamp(s.Phi, minPhi, maxPhi)
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
