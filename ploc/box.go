package ploc

import "math"

// Box is a minimal axis-aligned bounding box, intentionally
// independent of plocbvh.Aabb: the builder is usable on its own
// (and tested on its own) without importing the orchestration
// package, which in turn imports Builder to implement its own
// top-level Build convenience function. See toPlocBoxes/fromPlocNodes
// at the plocbvh package boundary for the (cheap, one-pass) conversion
// between the two.
type Box struct {
	Min, Max [3]float64
}

// EmptyBox returns a box suitable as the identity element of Union:
// empty, with Min at +Inf and Max at -Inf on every axis.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: [3]float64{inf, inf, inf}, Max: [3]float64{-inf, -inf, -inf}}
}

func (b Box) Union(o Box) Box {
	var r Box
	for i := 0; i < 3; i++ {
		r.Min[i] = math.Min(b.Min[i], o.Min[i])
		r.Max[i] = math.Max(b.Max[i], o.Max[i])
	}
	return r
}

func (b *Box) Extend(p [3]float64) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func (b Box) Center() [3]float64 {
	return [3]float64{
		(b.Min[0] + b.Max[0]) * 0.5,
		(b.Min[1] + b.Max[1]) * 0.5,
		(b.Min[2] + b.Max[2]) * 0.5,
	}
}

func (b Box) Diagonal() [3]float64 {
	return [3]float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// HalfArea is half the surface area of b: (dx+dy)*dz + dx*dy. Used as
// the merge cost metric rather than full surface area, since only
// relative ordering between candidate pairs matters.
func (b Box) HalfArea() float64 {
	d := b.Diagonal()
	return (d[0]+d[1])*d[2] + d[0]*d[1]
}
