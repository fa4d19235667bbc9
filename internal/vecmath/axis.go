package vecmath

import (
	"fmt"
	"math"
)

// Axis is one of the three coordinate axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists X, Y and Z in order.
var Axes = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Unit returns the positive unit vector along the axis.
func (a Axis) Unit() Vec3 {
	return Vec3{}.With(a, 1)
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "y", "Y":
		return Y, nil
	case "z", "Z":
		return Z, nil
	}
	return X, fmt.Errorf("unknown axis %q", s)
}

// MainAxis returns the axis along which v has the largest magnitude.
// Ties resolve to the earlier axis.
func MainAxis(v Vec3) Axis {
	best := X
	for _, a := range Axes[1:] {
		if math.Abs(v.Get(a)) > math.Abs(v.Get(best)) {
			best = a
		}
	}
	return best
}

// MainAxis2 is MainAxis for a 2D drag vector, returning X or Y.
func MainAxis2(v Vec2) Axis {
	if math.Abs(v.Y) > math.Abs(v.X) {
		return Y
	}
	return X
}

// RoundToAxis returns the signed unit vector along the main axis of v.
func RoundToAxis(v Vec3) Vec3 {
	a := MainAxis(v)
	s := 1.0
	if v.Get(a) < 0 {
		s = -1
	}
	return Vec3{}.With(a, s)
}
