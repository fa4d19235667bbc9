package analysis

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

// RollingWindows are the rolling average sizes reported by AnalyzeTrends.
var RollingWindows = []int{5, 12, 50, 100}

// TrendReport summarises the recent solve times of one cube size.
type TrendReport struct {
	Size        int                   `json:"size"`
	TotalSolves int                   `json:"total_solves"`
	Best        time.Duration         `json:"best"`
	Mean        time.Duration         `json:"mean"`
	RollingAvgs map[int]time.Duration `json:"rolling_averages"` // keyed by window, only when enough solves

	// ImprovementPct compares the first and last quarter of the recent
	// times. Negative means slower.
	ImprovementPct float64 `json:"improvement_pct"`
	// ConsistencyScore is 100 minus the coefficient of variation in
	// percent, clamped to [0, 100].
	ConsistencyScore float64 `json:"consistency_score"`
}

// AnalyzeTrends analyses stored scores.
func AnalyzeTrends(sc storage.Scores) *TrendReport {
	report := &TrendReport{
		Size:             sc.Size,
		TotalSolves:      sc.Total,
		Best:             sc.Best,
		Mean:             sc.Mean(),
		RollingAvgs:      make(map[int]time.Duration),
		ConsistencyScore: 100,
	}

	times := make([]float64, len(sc.Recent))
	for i, d := range sc.Recent {
		times[i] = float64(d.Milliseconds())
	}

	for _, n := range RollingWindows {
		if len(times) >= n {
			report.RollingAvgs[n] = msDuration(stat.Mean(times[len(times)-n:], nil))
		}
	}
	report.ImprovementPct = calculateImprovement(times)
	report.ConsistencyScore = calculateConsistency(times)
	return report
}

// Rolling returns the rolling average over the last n solves.
func (r *TrendReport) Rolling(n int) (time.Duration, bool) {
	d, ok := r.RollingAvgs[n]
	return d, ok
}

func calculateImprovement(times []float64) float64 {
	if len(times) < 4 {
		return 0
	}
	q := len(times) / 4
	first := stat.Mean(times[:q], nil)
	last := stat.Mean(times[len(times)-q:], nil)
	if first == 0 {
		return 0
	}
	return (first - last) / first * 100
}

func calculateConsistency(times []float64) float64 {
	if len(times) < 2 {
		return 100
	}
	mean, std := stat.MeanStdDev(times, nil)
	if mean == 0 {
		return 100
	}
	return math.Max(0, math.Min(100, 100-std/mean*100))
}

func msDuration(ms float64) time.Duration {
	return time.Duration(math.Round(ms)) * time.Millisecond
}
