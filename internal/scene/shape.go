package scene

import (
	"math"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Shape is a hit volume in a node's local space.
type Shape interface {
	// Intersect returns the ray parameter and the local surface normal of
	// the nearest hit in front of the origin.
	Intersect(origin, dir vecmath.Vec3) (t float64, normal vecmath.Vec3, ok bool)
}

// Box is an axis-aligned box centred on the local origin.
type Box struct {
	Half vecmath.Vec3
}

// Intersect uses the slab method.
func (b Box) Intersect(origin, dir vecmath.Vec3) (float64, vecmath.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	var enter vecmath.Vec3
	for _, a := range vecmath.Axes {
		o, d, h := origin.Get(a), dir.Get(a), b.Half.Get(a)
		if math.Abs(d) < 1e-12 {
			if o < -h || o > h {
				return 0, vecmath.Vec3{}, false
			}
			continue
		}
		t1, t2 := (-h-o)/d, (h-o)/d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enter = vecmath.Vec3{}.With(a, sign)
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, vecmath.Vec3{}, false
		}
	}
	if tmin < 0 {
		return 0, vecmath.Vec3{}, false
	}
	return tmin, enter, true
}

// Plane is a two-sided rectangle in the local XY plane with normal +Z.
// A zero Half makes it unbounded.
type Plane struct {
	Half vecmath.Vec2
}

// Intersect returns the hit on the plane. The normal faces the ray origin.
func (p Plane) Intersect(origin, dir vecmath.Vec3) (float64, vecmath.Vec3, bool) {
	if math.Abs(dir.Z) < 1e-12 {
		return 0, vecmath.Vec3{}, false
	}
	t := -origin.Z / dir.Z
	if t < 0 {
		return 0, vecmath.Vec3{}, false
	}
	hit := origin.Add(dir.Scale(t))
	if p.Half.X > 0 && math.Abs(hit.X) > p.Half.X {
		return 0, vecmath.Vec3{}, false
	}
	if p.Half.Y > 0 && math.Abs(hit.Y) > p.Half.Y {
		return 0, vecmath.Vec3{}, false
	}
	normal := vecmath.Z.Unit()
	if dir.Z > 0 {
		normal = normal.Negate()
	}
	return t, normal, true
}
