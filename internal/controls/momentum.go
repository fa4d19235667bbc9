package controls

import (
	"math"
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

type sample struct {
	delta vecmath.Vec3
	at    time.Time
}

// momentum is a sliding window of drag deltas.
type momentum struct {
	window  time.Duration
	samples []sample
}

func (m *momentum) prune(now time.Time) {
	keep := m.samples[:0]
	for _, s := range m.samples {
		if now.Sub(s.at) < m.window {
			keep = append(keep, s)
		}
	}
	m.samples = keep
}

func (m *momentum) add(delta vecmath.Vec3, now time.Time) {
	m.prune(now)
	m.samples = append(m.samples, sample{delta, now})
}

// value sums the deltas in the window, each discounted linearly by its age.
func (m *momentum) value(now time.Time) vecmath.Vec3 {
	m.prune(now)
	var sum vecmath.Vec3
	for _, s := range m.samples {
		w := 1 - float64(now.Sub(s.at))/float64(m.window)
		sum = sum.Add(s.delta.Scale(w))
	}
	return sum
}

// SnapTarget returns the angle a released rotation settles on. A flick, fast
// release before the rotation has gone far, advances to the next quarter
// turn in the direction of travel. Anything else rounds to the nearest
// quarter turn, which may be zero.
func SnapTarget(angle, momentum float64, th Thresholds) float64 {
	flick := math.Abs(momentum) > th.Momentum && math.Abs(angle) < th.FlickAngle
	if !flick {
		return vecmath.RoundAngle(angle)
	}
	dir := math.Copysign(1, angle)
	if angle == 0 {
		dir = math.Copysign(1, momentum)
	}
	return vecmath.RoundAngle(angle + dir*vecmath.QuarterTurn/2)
}
