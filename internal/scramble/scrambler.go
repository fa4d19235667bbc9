package scramble

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Lengths is the scramble length per cube size and difficulty.
var Lengths = map[int][3]int{
	2: {7, 9, 11},
	3: {20, 25, 30},
	4: {30, 40, 50},
	5: {40, 60, 80},
}

// Difficulty levels.
const (
	Easy   = 0
	Medium = 1
	Hard   = 2
)

// Option configures a Scrambler.
type Option func(*Scrambler)

// WithRand sets the random source. Tests use it for reproducible scrambles.
func WithRand(r *rand.Rand) Option {
	return func(s *Scrambler) {
		s.rng = r
	}
}

// Scrambler produces random, non-redundant scrambles.
type Scrambler struct {
	rng *rand.Rand
}

// New creates a Scrambler.
func New(opts ...Option) *Scrambler {
	s := &Scrambler{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>32|1))
	}
	return s
}

// Length returns the scramble length for a size and difficulty.
func Length(size, difficulty int) (int, error) {
	l, ok := Lengths[size]
	if !ok {
		return 0, fmt.Errorf("no scramble length for size %d", size)
	}
	if difficulty < Easy || difficulty > Hard {
		return 0, fmt.Errorf("difficulty %d out of range", difficulty)
	}
	return l[difficulty], nil
}

// Generate returns a scramble of the standard length for the size and
// difficulty.
func (s *Scrambler) Generate(size, difficulty int) (Sequence, error) {
	n, err := Length(size, difficulty)
	if err != nil {
		return nil, err
	}
	return s.GenerateN(size, n), nil
}

// GenerateN returns a scramble of exactly n tokens. Cubes larger than
// 3x3x3 also turn inner slabs. A face letter never repeats either of the
// two letters before it.
func (s *Scrambler) GenerateN(size, n int) Sequence {
	faces := "UDLRFB"
	if size > 3 {
		faces = "UuDdLlRrFfBb"
	}
	seq := make(Sequence, 0, n)
	for len(seq) < n {
		t := Token{
			Face:     faces[s.rng.IntN(len(faces))],
			Modifier: Modifiers[s.rng.IntN(len(Modifiers))],
		}
		k := len(seq)
		if k > 0 && seq[k-1].Face == t.Face {
			continue
		}
		if k > 1 && seq[k-2].Face == t.Face {
			continue
		}
		seq = append(seq, t)
	}
	return seq
}
