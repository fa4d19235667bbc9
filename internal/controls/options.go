package controls

import (
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay/internal/anim"
)

// Thresholds are the tuning constants of gesture recognition.
type Thresholds struct {
	// Drag is the drag length, in helper-plane units, that commits an axis.
	Drag float64
	// Momentum is the release momentum above which a drag counts as a flick.
	Momentum float64
	// FlickAngle is the largest accumulated angle, in radians, at which a
	// flick still advances to the next quarter turn.
	FlickAngle float64
	// Window is how long drag samples count toward momentum.
	Window time.Duration
}

// DefaultThresholds returns the standard tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Drag:       0.05,
		Momentum:   0.05,
		FlickAngle: math.Pi / 4,
		Window:     500 * time.Millisecond,
	}
}

// Preset is an easing and duration pair used to finish a rotation.
type Preset struct {
	Easing   anim.Easing
	Duration time.Duration
}

// Feel settings.
const (
	FeelSnappy = 0
	FeelSmooth = 1
	FeelBouncy = 2
)

// LayerPresets finish layer turns, indexed by feel.
var LayerPresets = [3]Preset{
	{anim.PowerOut(3), 125 * time.Millisecond},
	{anim.SineOut(), 200 * time.Millisecond},
	{anim.Spring(14, 0.45), 300 * time.Millisecond},
}

// CubePresets finish whole-cube rotations, indexed by feel.
var CubePresets = [3]Preset{
	{anim.PowerOut(4), 100 * time.Millisecond},
	{anim.SineOut(), 150 * time.Millisecond},
	{anim.Spring(12, 0.4), 350 * time.Millisecond},
}

// Option configures Controls.
type Option func(*Controls)

// WithThresholds overrides the gesture thresholds.
func WithThresholds(t Thresholds) Option {
	return func(c *Controls) {
		c.thresholds = t
	}
}

// WithFeel selects the animation feel (0-2).
func WithFeel(feel int) Option {
	return func(c *Controls) {
		c.SetFeel(feel)
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controls) {
		c.log = l
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
