package analysis

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/scramble"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

// records turns notation into moves one second apart.
func records(t *testing.T, notation string, size int) []storage.MoveRecord {
	t.Helper()
	seq, err := scramble.Parse(notation)
	if err != nil {
		t.Fatal(err)
	}
	var out []storage.MoveRecord
	for i, m := range seq.Moves(size) {
		out = append(out, storage.MoveRecord{MoveIndex: i, TsMs: int64(i) * 1000, Move: m})
	}
	return out
}

func TestOptimizeMoves(t *testing.T) {
	moves := records(t, "R R' U U U F", 3)
	opt := OptimizeMoves(moves)
	var got []string
	for _, m := range opt {
		got = append(got, notate(m, 3))
	}
	if strings.Join(got, " ") != "U' F" {
		t.Errorf("optimized to %v", got)
	}
	if e := CalculateEfficiency(moves, opt); e != 2.0/6.0 {
		t.Errorf("efficiency = %v", e)
	}
}

func TestAnalyzeRepetitions(t *testing.T) {
	r := AnalyzeRepetitions(records(t, "R R' U U", 3), 3)
	if len(r.ImmediateCancellations) != 1 || r.ImmediateCancellations[0].Move2 != "R'" {
		t.Errorf("cancellations = %+v", r.ImmediateCancellations)
	}
	if len(r.MergeOpportunities) != 1 || r.MergeOpportunities[0].MergedMove != "U2" {
		t.Errorf("merges = %+v", r.MergeOpportunities)
	}
	if r.TotalWastedMoves != 3 {
		t.Errorf("wasted = %d", r.TotalWastedMoves)
	}

	r = AnalyzeRepetitions(records(t, "R U R U R U F", 3), 3)
	if len(r.BackAndForthPatterns) != 1 || r.BackAndForthPatterns[0].Count != 3 {
		t.Errorf("back and forth = %+v", r.BackAndForthPatterns)
	}
}

func TestMineNGrams(t *testing.T) {
	moves := records(t, "R U R' U' F R U R' U' B", 3)
	ngrams := MineNGrams(moves, 3, 3, 4, 5)
	if len(ngrams) == 0 {
		t.Fatal("no n-grams found")
	}
	top := ngrams[0]
	if top.N != 4 || top.Count != 2 || strings.Join(top.Sequence, " ") != "R U R' U'" {
		t.Errorf("top n-gram = %+v", top)
	}
	if top.Occurrences[1].StartIndex != 5 {
		t.Errorf("second occurrence at %d", top.Occurrences[1].StartIndex)
	}
}

func TestSummarize(t *testing.T) {
	moves := records(t, "R U F2", 3)
	moves[3].TsMs = 5000
	s := Summarize(storage.Solve{SolveID: "abc", Size: 3, DurationMs: 6000}, moves)
	if s.TotalMoves != 4 || s.OptimizedMoves != 3 {
		t.Errorf("moves = %d, optimized = %d", s.TotalMoves, s.OptimizedMoves)
	}
	if s.LongestPauseMs != 3000 || s.PauseCount != 1 {
		t.Errorf("pauses = %d longest %d", s.PauseCount, s.LongestPauseMs)
	}
	if s.TPSOverall != 4.0/6.0 {
		t.Errorf("tps = %v", s.TPSOverall)
	}
	if s.AxisCounts != [3]int{1, 1, 2} {
		t.Errorf("axis counts = %v", s.AxisCounts)
	}
}

func TestAnalyzeTrends(t *testing.T) {
	sc := storage.Scores{Size: 3, Total: 8, Best: 10 * time.Second}
	for _, s := range []int{40, 38, 36, 30, 20, 18, 12, 10} {
		sc.Recent = append(sc.Recent, time.Duration(s)*time.Second)
	}

	r := AnalyzeTrends(sc)
	if ao5, ok := r.Rolling(5); !ok || ao5 != 18*time.Second {
		t.Errorf("ao5 = %v, %v", ao5, ok)
	}
	if _, ok := r.Rolling(12); ok {
		t.Error("ao12 reported with 8 solves")
	}
	// first quarter 39s, last quarter 11s
	if got := r.ImprovementPct; math.Abs(got-(39.0-11.0)/39.0*100) > 1e-9 {
		t.Errorf("improvement = %v", got)
	}
	if r.ConsistencyScore <= 0 || r.ConsistencyScore >= 100 {
		t.Errorf("consistency = %v", r.ConsistencyScore)
	}

	flat := AnalyzeTrends(storage.Scores{Recent: []time.Duration{time.Second, time.Second}})
	if flat.ConsistencyScore != 100 {
		t.Errorf("identical times scored %v", flat.ConsistencyScore)
	}
}
