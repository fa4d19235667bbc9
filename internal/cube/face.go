package cube

import "github.com/SeamusWaldron/cubeplay/internal/vecmath"

// Face is a sticker label. The order matches the generation order of the
// outer faces: -x, +x, -y, +y, -z, +z.
type Face int

const (
	L Face = iota // Left, -x
	R             // Right, +x
	D             // Down, -y
	U             // Up, +y
	B             // Back, -z
	F             // Front, +z
)

// Faces lists every face in generation order.
var Faces = [6]Face{L, R, D, U, B, F}

func (f Face) String() string {
	switch f {
	case L:
		return "L"
	case R:
		return "R"
	case D:
		return "D"
	case U:
		return "U"
	case B:
		return "B"
	case F:
		return "F"
	default:
		return "?"
	}
}

// Axis returns the axis the face is perpendicular to.
func (f Face) Axis() vecmath.Axis {
	return vecmath.Axis(int(f) / 2)
}

// Sign returns -1 for L, D and B and +1 for R, U and F.
func (f Face) Sign() int {
	if f%2 == 0 {
		return -1
	}
	return 1
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() vecmath.Vec3 {
	return vecmath.Vec3{}.With(f.Axis(), float64(f.Sign()))
}

// FaceOf returns the face whose normal is closest to v.
func FaceOf(v vecmath.Vec3) Face {
	a := vecmath.MainAxis(v)
	f := Face(int(a) * 2)
	if v.Get(a) > 0 {
		f++
	}
	return f
}

// ParseFace parses one of the letters L R D U B F.
func ParseFace(c byte) (Face, bool) {
	switch c {
	case 'L':
		return L, true
	case 'R':
		return R, true
	case 'D':
		return D, true
	case 'U':
		return U, true
	case 'B':
		return B, true
	case 'F':
		return F, true
	}
	return 0, false
}
