package cubeplay

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay/internal/controls"
	"github.com/SeamusWaldron/cubeplay/internal/theme"
)

// Option configures a Game.
type Option func(*config)

type config struct {
	size       int
	feel       int
	difficulty int
	theme      string
	aspect     float64
	store      Store
	log        logrus.FieldLogger
	rng        *rand.Rand
	now        func() time.Time
	thresholds controls.Thresholds
}

func defaultConfig() *config {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &config{
		size:       3,
		feel:       controls.FeelSnappy,
		difficulty: 1,
		theme:      theme.Default,
		aspect:     1,
		log:        l,
		now:        time.Now,
		thresholds: controls.DefaultThresholds(),
	}
}

// WithSize sets the cube size (2-5). The default is 3.
func WithSize(size int) Option {
	return func(c *config) {
		c.size = size
	}
}

// WithFeel selects how finished turns are animated: 0 snappy, 1 smooth,
// 2 bouncy.
func WithFeel(feel int) Option {
	return func(c *config) {
		c.feel = feel
	}
}

// WithDifficulty selects the scramble length (0-2). The default is 1.
func WithDifficulty(d int) Option {
	return func(c *config) {
		c.difficulty = d
	}
}

// WithTheme selects a colour theme by name.
func WithTheme(name string) Option {
	return func(c *config) {
		c.theme = name
	}
}

// WithAspect sets the viewport aspect ratio (width / height) the camera is
// framed for.
func WithAspect(aspect float64) Option {
	return func(c *config) {
		c.aspect = aspect
	}
}

// WithStore persists saved games and solves. Without a store nothing is
// persisted.
func WithStore(s Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithLogger sets the logger. By default log output is discarded.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithRand sets the random source used for scrambles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithClock replaces time.Now, for the solve timer and move timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithThresholds overrides the gesture thresholds.
func WithThresholds(t controls.Thresholds) Option {
	return func(c *config) {
		c.thresholds = t
	}
}
