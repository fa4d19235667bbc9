// Package analysis computes statistics for a recorded solve.
package analysis

import (
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/scramble"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

// PauseThresholdMs is the gap between moves counted as a pause.
const PauseThresholdMs = 1500

// SolveSummary contains statistics for a single solve.
type SolveSummary struct {
	SolveID           string            `json:"solve_id"`
	Size              int               `json:"size"`
	DurationMs        int64             `json:"duration_ms"`
	TotalMoves        int               `json:"total_moves"`
	OptimizedMoves    int               `json:"optimized_moves"`
	Efficiency        float64           `json:"efficiency"`
	TPSOverall        float64           `json:"tps_overall"`
	LongestPauseMs    int64             `json:"longest_pause_ms"`
	PauseCount        int               `json:"pause_count"`
	AvgMoveDurationMs float64           `json:"avg_move_duration_ms"`
	AxisCounts        [3]int            `json:"axis_counts"`
	Rotations         int               `json:"rotations"`
	Repetitions       *RepetitionReport `json:"repetitions"`
	NGrams            []NGram           `json:"ngrams,omitempty"`
}

// Summarize analyses the moves of a solve.
func Summarize(s storage.Solve, moves []storage.MoveRecord) *SolveSummary {
	optimized := OptimizeMoves(moves)
	sum := &SolveSummary{
		SolveID:           s.SolveID,
		Size:              s.Size,
		DurationMs:        s.DurationMs,
		TotalMoves:        len(moves),
		OptimizedMoves:    len(optimized),
		Efficiency:        CalculateEfficiency(moves, optimized),
		TPSOverall:        CalculateTPS(moves, s.DurationMs),
		LongestPauseMs:    FindLongestPause(moves),
		PauseCount:        CountPausesOver(moves, PauseThresholdMs),
		AvgMoveDurationMs: CalculateAvgMoveDuration(moves),
		Repetitions:       AnalyzeRepetitions(moves, s.Size),
		NGrams:            MineNGrams(moves, s.Size, 3, 6, 5),
	}
	for _, m := range moves {
		if m.Move.Whole {
			sum.Rotations++
			continue
		}
		sum.AxisCounts[m.Move.Axis]++
	}
	return sum
}

// Duration returns the solve duration.
func (s *SolveSummary) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// PauseInfo represents a pause during solving.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// AnalyzePauses finds all gaps of at least thresholdMs.
func AnalyzePauses(moves []storage.MoveRecord, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo
	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           moves[i-1].TsMs,
			})
		}
	}
	return pauses
}

// CalculateTPS calculates turns per second.
func CalculateTPS(moves []storage.MoveRecord, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(moves)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(moves []storage.MoveRecord) float64 {
	if len(moves) < 2 {
		return 0
	}
	totalGap := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(totalGap) / float64(len(moves)-1)
}

// FindLongestPause finds the longest gap between moves.
func FindLongestPause(moves []storage.MoveRecord) int64 {
	var longest int64
	for i := 1; i < len(moves); i++ {
		if gap := moves[i].TsMs - moves[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps over a threshold.
func CountPausesOver(moves []storage.MoveRecord, thresholdMs int64) int {
	return len(AnalyzePauses(moves, thresholdMs+1))
}

func notate(m storage.MoveRecord, size int) string {
	return scramble.Notate(m.Move, size)
}
