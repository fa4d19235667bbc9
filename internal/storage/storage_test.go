package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateUp(t *testing.T) {
	db := openTestDB(t)

	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != LatestVersion() {
		t.Errorf("version = %d, want %d", v, LatestVersion())
	}

	// Running again is a no-op.
	if err := db.MigrateUp(); err != nil {
		t.Errorf("second MigrateUp: %v", err)
	}
}

func TestSavedGameRoundTrip(t *testing.T) {
	store := NewStore(openTestDB(t))

	g, err := store.LoadGame()
	if err != nil {
		t.Fatal(err)
	}
	if g != nil {
		t.Fatalf("expected no saved game, got %+v", g)
	}

	c := cube.Generate(3)
	if err := c.Apply(cube.Move{Axis: vecmath.Y, Turns: 1, Layer: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveGame(c.Serialize(), 42*time.Second, "U R' F2"); err != nil {
		t.Fatal(err)
	}

	g, err = store.LoadGame()
	if err != nil {
		t.Fatal(err)
	}
	if g == nil {
		t.Fatal("saved game missing")
	}
	if g.Elapsed != 42*time.Second || g.Scramble != "U R' F2" {
		t.Errorf("loaded elapsed=%v scramble=%q", g.Elapsed, g.Scramble)
	}

	fresh := cube.Generate(3)
	if err := fresh.Restore(g.State); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if fresh.SolvedCheck() {
		t.Error("restored cube should not be solved")
	}
	for _, p := range c.Pieces() {
		if fresh.Cell(p.ID) != c.Cell(p.ID) {
			t.Errorf("piece %d at %v, want %v", p.ID, fresh.Cell(p.ID), c.Cell(p.ID))
		}
	}

	// Saving again replaces the slot.
	if err := store.SaveGame(cube.Generate(2).Serialize(), 0, ""); err != nil {
		t.Fatal(err)
	}
	g, _ = store.LoadGame()
	if g.State.Size != 2 {
		t.Errorf("size = %d, want 2", g.State.Size)
	}

	if err := store.ClearGame(); err != nil {
		t.Fatal(err)
	}
	if g, _ := store.LoadGame(); g != nil {
		t.Error("expected saved game to be cleared")
	}
}

func TestRecordSolveAndScores(t *testing.T) {
	store := NewStore(openTestDB(t))
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	times := []time.Duration{40 * time.Second, 30 * time.Second, 35 * time.Second}
	wantBest := []bool{true, true, false}
	var lastID string
	for i, d := range times {
		started := start.Add(time.Duration(i) * time.Minute)
		moves := []MoveRecord{
			NewMoveRecord(0, started, started.Add(time.Second), cube.Move{Axis: vecmath.X, Turns: 1, Layer: -1}),
			NewMoveRecord(1, started, started.Add(2*time.Second), cube.Move{Axis: vecmath.Y, Turns: -1, Whole: true}),
		}
		s := &Solve{
			Size:       3,
			StartedAt:  started,
			EndedAt:    started.Add(d),
			DurationMs: d.Milliseconds(),
		}
		best, err := store.RecordSolve(s, moves)
		if err != nil {
			t.Fatal(err)
		}
		if best != wantBest[i] {
			t.Errorf("solve %d best = %v, want %v", i, best, wantBest[i])
		}
		if s.SolveID == "" || s.MoveCount != 2 {
			t.Errorf("solve %d id=%q moves=%d", i, s.SolveID, s.MoveCount)
		}
		lastID = s.SolveID
	}

	scores, err := store.Scores.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("scores: %+v", scores)
	if scores.Total != 3 || scores.Best != 30*time.Second {
		t.Errorf("total=%d best=%v", scores.Total, scores.Best)
	}
	if len(scores.Recent) != 3 || scores.Recent[0] != 40*time.Second || scores.Recent[2] != 35*time.Second {
		t.Errorf("recent = %v", scores.Recent)
	}
	if scores.Mean() != 35*time.Second {
		t.Errorf("mean = %v", scores.Mean())
	}

	other, _ := store.Scores.Get(4)
	if other.Total != 0 || other.Best != 0 || len(other.Recent) != 0 {
		t.Errorf("size 4 scores = %+v", other)
	}

	moves, err := store.Moves.GetBySolve(lastID)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 || moves[0].TsMs != 1000 {
		t.Fatalf("moves = %+v", moves)
	}
	got := ToMoves(moves)
	if got[0] != (cube.Move{Axis: vecmath.X, Turns: 1, Layer: -1}) || got[1] != (cube.Move{Axis: vecmath.Y, Turns: -1, Whole: true}) {
		t.Errorf("moves = %v", got)
	}

	list, err := store.Solves.List(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].SolveID != lastID {
		t.Errorf("List returned %d solves, first %q", len(list), list[0].SolveID)
	}

	if err := store.Solves.Delete(lastID); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.Moves.Count(lastID); n != 0 {
		t.Errorf("moves not cascaded, %d left", n)
	}
	if s, _ := store.Solves.Get(lastID); s != nil {
		t.Error("solve still present after delete")
	}

	if err := store.Scores.Clear(0); err != nil {
		t.Fatal(err)
	}
	if s, _ := store.Scores.Get(3); s.Total != 0 {
		t.Errorf("total after clear = %d", s.Total)
	}
}

func TestRecentLimit(t *testing.T) {
	store := NewStore(openTestDB(t))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < RecentLimit+5; i++ {
		at := start.Add(time.Duration(i) * time.Second)
		s := &Solve{Size: 2, StartedAt: at, EndedAt: at, DurationMs: int64(i + 1)}
		if err := store.Solves.Create(s, nil); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := store.Scores.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if scores.Total != RecentLimit+5 || len(scores.Recent) != RecentLimit {
		t.Errorf("total=%d recent=%d", scores.Total, len(scores.Recent))
	}
	if scores.Recent[0] != 6*time.Millisecond || scores.Best != time.Millisecond {
		t.Errorf("oldest recent=%v best=%v", scores.Recent[0], scores.Best)
	}
}
