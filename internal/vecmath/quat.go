package vecmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// Quat is a unit quaternion representing a rotation.
// The zero value is not a valid rotation; use IdentityQuat.
type Quat struct {
	n quat.Number
}

// IdentityQuat returns the rotation that does nothing.
func IdentityQuat() Quat {
	return Quat{quat.Number{Real: 1}}
}

// AxisAngle returns a rotation of angle radians about axis (right-hand rule).
func AxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return Quat{quat.Number{
		Real: math.Cos(angle / 2),
		Imag: a.X * s,
		Jmag: a.Y * s,
		Kmag: a.Z * s,
	}}
}

// Mul returns the rotation q∘r (apply r first, then q).
func (q Quat) Mul(r Quat) Quat {
	return Quat{quat.Mul(q.n, r.n)}
}

// Inverse returns the inverse rotation.
func (q Quat) Inverse() Quat {
	return Quat{quat.Conj(q.n)}
}

// Normalize rescales q to unit length.
func (q Quat) Normalize() Quat {
	l := quat.Abs(q.n)
	if l == 0 {
		return IdentityQuat()
	}
	return Quat{quat.Scale(1/l, q.n)}
}

// Rotate rotates v by q.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q.n, p), quat.Conj(q.n))
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// XYZW returns the quaternion components in x, y, z, w order.
func (q Quat) XYZW() [4]float64 {
	return [4]float64{q.n.Imag, q.n.Jmag, q.n.Kmag, q.n.Real}
}

// Matrix returns the rotation matrix of q.
func (q Quat) Matrix() Mat3 {
	w, x, y, z := q.n.Real, q.n.Imag, q.n.Jmag, q.n.Kmag
	return Mat3{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// QuatFromMatrix converts a pure rotation matrix to a quaternion.
func QuatFromMatrix(m Mat3) Quat {
	var n quat.Number
	trace := m[0][0] + m[1][1] + m[2][2]
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		n.Real = 0.25 / s
		n.Imag = (m[2][1] - m[1][2]) * s
		n.Jmag = (m[0][2] - m[2][0]) * s
		n.Kmag = (m[1][0] - m[0][1]) * s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := 2 * math.Sqrt(1+m[0][0]-m[1][1]-m[2][2])
		n.Real = (m[2][1] - m[1][2]) / s
		n.Imag = 0.25 * s
		n.Jmag = (m[0][1] + m[1][0]) / s
		n.Kmag = (m[0][2] + m[2][0]) / s
	case m[1][1] > m[2][2]:
		s := 2 * math.Sqrt(1+m[1][1]-m[0][0]-m[2][2])
		n.Real = (m[0][2] - m[2][0]) / s
		n.Imag = (m[0][1] + m[1][0]) / s
		n.Jmag = 0.25 * s
		n.Kmag = (m[1][2] + m[2][1]) / s
	default:
		s := 2 * math.Sqrt(1+m[2][2]-m[0][0]-m[1][1])
		n.Real = (m[1][0] - m[0][1]) / s
		n.Imag = (m[0][2] + m[2][0]) / s
		n.Jmag = (m[1][2] + m[2][1]) / s
		n.Kmag = 0.25 * s
	}
	return Quat{n}.Normalize()
}

// QuatFromEuler builds a rotation from XYZ-order Euler angles in radians.
func QuatFromEuler(e Vec3) Quat {
	qx := AxisAngle(X.Unit(), e.X)
	qy := AxisAngle(Y.Unit(), e.Y)
	qz := AxisAngle(Z.Unit(), e.Z)
	return qx.Mul(qy).Mul(qz)
}

// Euler returns XYZ-order Euler angles in radians.
func (q Quat) Euler() Vec3 {
	m := q.Matrix()
	m13 := math.Max(-1, math.Min(1, m[0][2]))
	var e Vec3
	e.Y = math.Asin(m13)
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m[1][2], m[2][2])
		e.Z = math.Atan2(-m[0][1], m[0][0])
	} else {
		e.X = math.Atan2(m[2][1], m[1][1])
		e.Z = 0
	}
	return e
}

// Snap returns the nearest rotation whose Euler angles are all multiples of
// 90 degrees. Near-aligned rotations are snapped through their matrix, which
// is exact; anything else falls back to per-axis Euler rounding.
func (q Quat) Snap() Quat {
	m := q.Matrix()
	var r Mat3
	for i := range m {
		for j := range m[i] {
			r[i][j] = math.Round(m[i][j])
		}
	}
	if isSignedPermutation(r) {
		return QuatFromMatrix(r)
	}
	return QuatFromEuler(SnapEuler(q.Euler()))
}

// Aligned reports whether q is within tol of a 90-degree-aligned rotation.
func (q Quat) Aligned(tol float64) bool {
	m := q.Matrix()
	for i := range m {
		for j := range m[i] {
			if math.Abs(m[i][j]-math.Round(m[i][j])) > tol {
				return false
			}
		}
	}
	return true
}

// ApproxEqual reports whether q and r describe the same rotation within tol.
func (q Quat) ApproxEqual(r Quat, tol float64) bool {
	d := math.Abs(q.n.Real*r.n.Real + q.n.Imag*r.n.Imag + q.n.Jmag*r.n.Jmag + q.n.Kmag*r.n.Kmag)
	return 1-d <= tol
}

// LookRotation returns a rotation that maps +Z onto dir. The +X axis of the
// result is kept horizontal (perpendicular to world Y) when possible.
func LookRotation(dir Vec3) Quat {
	z := dir.Normalize()
	x := Y.Unit().Cross(z)
	if x.Len() < 1e-9 {
		x = X.Unit()
	}
	x = x.Normalize()
	y := z.Cross(x)
	return QuatFromMatrix(Mat3{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	})
}

func isSignedPermutation(m Mat3) bool {
	for i := 0; i < 3; i++ {
		rowCount, colCount := 0, 0
		for j := 0; j < 3; j++ {
			if m[i][j] != 0 {
				rowCount++
			}
			if m[j][i] != 0 {
				colCount++
			}
		}
		if rowCount != 1 || colCount != 1 {
			return false
		}
	}
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	return det == 1
}
