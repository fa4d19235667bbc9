package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

// maxOccurrences caps the sample occurrences kept per n-gram.
const maxOccurrences = 10

// NGram is a move sequence that occurs more than once in a solve.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence is where an n-gram was found.
type NGramOccurrence struct {
	StartIndex int   `json:"start_index"`
	TsMs       int64 `json:"ts_ms"`
}

// token packs a move into one byte.
func token(m cube.Move) uint8 {
	turn := 0
	switch m.Turns {
	case 1:
		turn = 1
	case 2, -2:
		turn = 2
	}
	whole := 0
	if m.Whole {
		whole = 1
	}
	return uint8(int(m.Axis)*36 + (m.Layer+2)*6 + turn*2 + whole)
}

// RollingHash is a Rabin-Karp hash over a window of tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint8
	n      int
}

// NewRollingHash creates a rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   257,
		n:      n,
		window: make([]uint8, 0, n),
		pow:    1,
	}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(t uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, t)
		rh.hash = rh.hash*rh.base + uint64(t)
		return
	}
	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(t)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = t
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 { return rh.hash }

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 { return slices.Clone(rh.window) }

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool { return len(rh.window) == rh.n }

type ngramEntry struct {
	tokens      []uint8
	start       int
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams returns the topK most frequent repeated sequences of each
// length in [minN, maxN], longest first.
func MineNGrams(moves []storage.MoveRecord, size, minN, maxN, topK int) []NGram {
	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = token(m.Move)
	}

	var result []NGram
	for n := min(maxN, len(moves)); n >= minN; n-- {
		result = append(result, mineNGramsForN(tokens, moves, size, n, topK)...)
	}
	return result
}

func mineNGramsForN(tokens []uint8, moves []storage.MoveRecord, size, n, topK int) []NGram {
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, t := range tokens {
		rh.Roll(t)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start, TsMs: moves[start].TsMs}

		var entry *ngramEntry
		for _, e := range counts[rh.Hash()] {
			if slices.Equal(e.tokens, rh.window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: rh.Window(), start: start}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}

	var repeated []*ngramEntry
	for _, e := range order {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})
	if len(repeated) > topK {
		repeated = repeated[:topK]
	}

	result := make([]NGram, len(repeated))
	for i, e := range repeated {
		seq := make([]string, n)
		for j := range seq {
			seq[j] = notate(moves[e.start+j], size)
		}
		result[i] = NGram{N: n, Sequence: seq, Count: e.count, Occurrences: e.occurrences}
	}
	return result
}
