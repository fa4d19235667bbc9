package analysis

import (
	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

// Cancellation is a move immediately undone, e.g. R followed by R'.
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
	TsMs   int64  `json:"ts_ms"`
}

// MergeOpportunity is a pair of turns of the same layer that could be one.
type MergeOpportunity struct {
	Index1     int    `json:"index1"`
	Index2     int    `json:"index2"`
	Move1      string `json:"move1"`
	Move2      string `json:"move2"`
	MergedMove string `json:"merged_move"`
	TsMs       int64  `json:"ts_ms"`
}

// BackAndForthPattern is a pair of moves repeated in a row, e.g. R U R U R U.
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
	TsMs       int64    `json:"ts_ms"`
}

// RepetitionReport contains all repetition analysis results.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation        `json:"immediate_cancellations"`
	MergeOpportunities     []MergeOpportunity    `json:"merge_opportunities"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns"`
	TotalWastedMoves       int                   `json:"total_wasted_moves"`
}

// sameLayer reports whether two moves turn the same slab.
func sameLayer(a, b cube.Move) bool {
	if a.Axis != b.Axis || a.Whole != b.Whole {
		return false
	}
	return a.Whole || a.Layer == b.Layer
}

// mergeMoves combines two turns of the same slab. It returns false when
// they cancel.
func mergeMoves(a, b cube.Move) (cube.Move, bool) {
	turns := ((a.Turns+b.Turns)%4 + 4) % 4
	switch turns {
	case 0:
		return cube.Move{}, false
	case 3:
		a.Turns = -1
	default:
		a.Turns = turns
	}
	return a, true
}

// AnalyzeRepetitions finds wasted motion in a move sequence.
func AnalyzeRepetitions(moves []storage.MoveRecord, size int) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		MergeOpportunities:     []MergeOpportunity{},
		BackAndForthPatterns:   []BackAndForthPattern{},
	}
	if len(moves) < 2 {
		return report
	}

	for i := 0; i < len(moves)-1; i++ {
		m1, m2 := moves[i], moves[i+1]
		if !sameLayer(m1.Move, m2.Move) {
			continue
		}
		merged, ok := mergeMoves(m1.Move, m2.Move)
		if !ok {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  notate(m1, size),
				Move2:  notate(m2, size),
				TsMs:   m1.TsMs,
			})
			report.TotalWastedMoves += 2
			continue
		}
		report.MergeOpportunities = append(report.MergeOpportunities, MergeOpportunity{
			Index1:     i,
			Index2:     i + 1,
			Move1:      notate(m1, size),
			Move2:      notate(m2, size),
			MergedMove: notate(storage.MoveRecord{Move: merged}, size),
			TsMs:       m1.TsMs,
		})
		report.TotalWastedMoves++
	}

	report.BackAndForthPatterns = findBackAndForth(moves, size)
	return report
}

// findBackAndForth finds a pair of moves repeated at least three times.
func findBackAndForth(moves []storage.MoveRecord, size int) []BackAndForthPattern {
	patterns := []BackAndForthPattern{}
	if len(moves) < 4 {
		return patterns
	}

	i := 0
	for i < len(moves)-3 {
		a, b := moves[i].Move, moves[i+1].Move
		if a == b {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j < len(moves)-1 && moves[j].Move == a && moves[j+1].Move == b {
			count++
			j += 2
		}

		if count >= 3 {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{notate(moves[i], size), notate(moves[i+1], size)},
				Count:      count,
				TsMs:       moves[i].TsMs,
			})
			i = j
		} else {
			i++
		}
	}
	return patterns
}

// OptimizeMoves returns the sequence with cancellations and merges applied.
func OptimizeMoves(moves []storage.MoveRecord) []storage.MoveRecord {
	result := make([]storage.MoveRecord, 0, len(moves))
	for _, move := range moves {
		if len(result) == 0 {
			result = append(result, move)
			continue
		}
		last := &result[len(result)-1]
		if !sameLayer(last.Move, move.Move) {
			result = append(result, move)
			continue
		}
		merged, ok := mergeMoves(last.Move, move.Move)
		if !ok {
			result = result[:len(result)-1]
		} else {
			last.Move = merged
		}
	}
	return result
}

// CalculateEfficiency returns optimized length over original length.
func CalculateEfficiency(original, optimized []storage.MoveRecord) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}
