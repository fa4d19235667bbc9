package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Easing maps a progress fraction in [0,1] to an eased value.
// Every easing here returns 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// PowerIn accelerates from zero velocity.
func PowerIn(power int) Easing {
	p := float64(max(power, 1))
	return func(t float64) float64 {
		return math.Pow(t, p)
	}
}

// PowerOut decelerates to zero velocity.
func PowerOut(power int) Easing {
	p := float64(max(power, 1))
	return func(t float64) float64 {
		return 1 - math.Abs(math.Pow(t-1, p))
	}
}

// PowerInOut accelerates until halfway, then decelerates.
func PowerInOut(power int) Easing {
	p := float64(max(power, 1))
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(t*2, p) / 2
		}
		return (1-math.Abs(math.Pow(t*2-2, p)))/2 + 0.5
	}
}

// SineIn starts slowly.
func SineIn() Easing {
	return func(t float64) float64 {
		return 1 + math.Sin(math.Pi/2*t-math.Pi/2)
	}
}

// SineOut ends slowly.
func SineOut() Easing {
	return func(t float64) float64 {
		return math.Sin(math.Pi / 2 * t)
	}
}

// SineInOut starts and ends slowly.
func SineInOut() Easing {
	return func(t float64) float64 {
		return (1 + math.Sin(math.Pi*t-math.Pi/2)) / 2
	}
}

// springSteps is the number of samples taken from the spring simulation.
const springSteps = 120

// Spring returns an easing shaped like a damped spring released toward 1.
// A damping ratio below 1 overshoots and settles back, which gives moves a
// slight bounce. The curve is sampled once from a harmonica spring and
// corrected so the end point is exactly 1.
func Spring(angularFrequency, dampingRatio float64) Easing {
	spring := harmonica.NewSpring(harmonica.FPS(springSteps), angularFrequency, dampingRatio)

	samples := make([]float64, springSteps+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSteps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		samples[i] = pos
	}
	residual := 1 - samples[springSteps]

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		f := t * springSteps
		i := int(f)
		frac := f - float64(i)
		v := samples[i] + (samples[i+1]-samples[i])*frac
		return v + residual*t
	}
}
