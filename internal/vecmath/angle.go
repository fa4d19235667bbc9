package vecmath

import "math"

// QuarterTurn is 90 degrees in radians.
const QuarterTurn = math.Pi / 2

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RoundAngle rounds an angle to the nearest multiple of 90 degrees,
// rounding halves away from zero.
func RoundAngle(angle float64) float64 {
	sign := 1.0
	if angle < 0 {
		sign = -1
	}
	return sign * math.Round(math.Abs(angle)/QuarterTurn) * QuarterTurn
}

// QuarterTurns returns the signed number of quarter turns nearest to angle.
func QuarterTurns(angle float64) int {
	return int(math.Round(RoundAngle(angle) / QuarterTurn))
}

// SnapEuler rounds every component of an Euler angle triple to the nearest
// multiple of 90 degrees.
func SnapEuler(e Vec3) Vec3 {
	return Vec3{RoundAngle(e.X), RoundAngle(e.Y), RoundAngle(e.Z)}
}
