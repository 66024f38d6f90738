package plocbvh

import "math"

// Ray is a ray in 3D space used for BVH traversal.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	Tmin, Tmax   float64
}

// safeInverse returns 1/x, avoiding division by (near) zero: if |x| is
// at or below epsilon, it returns sign(x)/epsilon instead of an actual
// infinity. This keeps the slab test well-behaved without ever
// comparing InvDirection against math.Inf.
func safeInverse(x float64) float64 {
	const eps = 2.220446049250313e-16 // float64 machine epsilon
	if math.Abs(x) <= eps {
		if x < 0 {
			return -1 / eps
		}
		return 1 / eps
	}
	return 1 / x
}

// NewRay constructs a Ray with the given origin, direction, and [tmin,
// tmax] distance range. InvDirection is computed via safeInverse.
func NewRay(origin, direction Vec3, tmin, tmax float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		InvDirection: vec3(
			safeInverse(direction.X),
			safeInverse(direction.Y),
			safeInverse(direction.Z),
		),
		Tmin: tmin,
		Tmax: tmax,
	}
}

// NewInfiniteRay constructs a Ray with Tmin = 0 and Tmax = +Inf.
func NewInfiniteRay(origin, direction Vec3) Ray {
	return NewRay(origin, direction, 0.0, math.Inf(1))
}
