package plocbvh

import "math"

// Aabb is an axis-aligned bounding box described by its minimum and
// maximum corners. An empty box has Min = +Inf and Max = -Inf on every
// component; Union with anything else yields the other operand.
type Aabb struct {
	Min, Max Vec3
}

// EmptyAabb returns an AABB that contains no points.
func EmptyAabb() Aabb {
	return Aabb{
		Min: vec3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: vec3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// AabbFromPoint returns a degenerate AABB containing only p.
func AabbFromPoint(p Vec3) Aabb {
	return Aabb{Min: p, Max: p}
}

// Extend grows the AABB in place to include p.
func (a *Aabb) Extend(p Vec3) {
	a.Min = a.Min.Min(p)
	a.Max = a.Max.Max(p)
}

// Union returns the smallest AABB containing both a and o.
func (a Aabb) Union(o Aabb) Aabb {
	return Aabb{Min: a.Min.Min(o.Min), Max: a.Max.Max(o.Max)}
}

// Diagonal returns Max - Min.
func (a Aabb) Diagonal() Vec3 {
	return a.Max.Sub(a.Min)
}

// Center returns the midpoint of the AABB.
func (a Aabb) Center() Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// HalfArea returns half the AABB's surface area: (dx+dy)*dz + dx*dy.
// This is the SAH cost surrogate used by the PLOC merge-direction pass.
func (a Aabb) HalfArea() float64 {
	d := a.Diagonal()
	return (d.X+d.Y)*d.Z + d.X*d.Y
}

// SurfaceArea returns the full surface area of the AABB.
func (a Aabb) SurfaceArea() float64 {
	d := a.Diagonal()
	return 2.0 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// debugAssertValid panics if the AABB contains NaNs or has a negative
// extent on any axis, when debugAssertions is enabled. It is a no-op in
// release builds, matching the original's debug_assert! convention.
func (a Aabb) debugAssertValid() {
	if !debugAssertions {
		return
	}
	if math.IsNaN(a.Min.X) || math.IsNaN(a.Min.Y) || math.IsNaN(a.Min.Z) ||
		math.IsNaN(a.Max.X) || math.IsNaN(a.Max.Y) || math.IsNaN(a.Max.Z) {
		panic("plocbvh: NaN in AABB")
	}
	if a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z {
		panic("plocbvh: AABB with negative extent")
	}
}

// RayIntersect returns the entry distance of ray against the AABB, or
// +Inf if the ray misses. It uses the standard slab test.
func (a Aabb) RayIntersect(ray *Ray) float64 {
	t1x := (a.Min.X - ray.Origin.X) * ray.InvDirection.X
	t2x := (a.Max.X - ray.Origin.X) * ray.InvDirection.X
	t1y := (a.Min.Y - ray.Origin.Y) * ray.InvDirection.Y
	t2y := (a.Max.Y - ray.Origin.Y) * ray.InvDirection.Y
	t1z := (a.Min.Z - ray.Origin.Z) * ray.InvDirection.Z
	t2z := (a.Max.Z - ray.Origin.Z) * ray.InvDirection.Z

	tminX, tmaxX := minF(t1x, t2x), maxF(t1x, t2x)
	tminY, tmaxY := minF(t1y, t2y), maxF(t1y, t2y)
	tminZ, tmaxZ := minF(t1z, t2z), maxF(t1z, t2z)

	tminN := maxF(tminX, maxF(tminY, tminZ))
	tmaxN := minF(tmaxX, minF(tmaxY, tmaxZ))

	if tmaxN >= tminN && tmaxN >= 0.0 {
		return tminN
	}
	return math.Inf(1)
}
