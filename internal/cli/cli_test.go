package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/scramble"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

// run executes the root command against files in dir.
func run(t *testing.T, dir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{
		"--db", filepath.Join(dir, "test.db"),
		"--config", filepath.Join(dir, "state.json"),
	}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestScrambleCommand(t *testing.T) {
	dir := t.TempDir()
	out := run(t, dir, "scramble", "--size", "3", "--difficulty", "1", "--count", "2", "--seed", "7")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 scrambles, got %q", out)
	}
	for _, l := range lines {
		if n := len(strings.Fields(l)); n != 25 {
			t.Errorf("scramble %q has %d moves", l, n)
		}
	}

	again := run(t, dir, "scramble", "--size", "3", "--difficulty", "1", "--count", "2", "--seed", "7")
	if again != out {
		t.Error("same seed produced different scrambles")
	}
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	out := run(t, dir, "apply", "--size", "3", "U R' F2", "F2 R U'")
	if !strings.Contains(out, "Solved:  true") {
		t.Errorf("expected solved cube:\n%s", out)
	}

	glb := filepath.Join(dir, "cube.glb")
	out = run(t, dir, "apply", "--size", "2", "-o", glb, "R")
	if !strings.Contains(out, "Solved:  false") {
		t.Errorf("expected scrambled cube:\n%s", out)
	}
	if fi, err := os.Stat(glb); err != nil || fi.Size() == 0 {
		t.Errorf("export missing: %v", err)
	}
	applyExport = ""
}

func TestConfigAndStatus(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "config", "set", "size", "4")
	run(t, dir, "config", "set", "theme", "classic")

	out := run(t, dir, "status")
	for _, want := range []string{"Size:       4", "Theme:      classic", "Saved game:  none", "schema v2 of 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}

	rootCmd.SetArgs([]string{"--config", filepath.Join(dir, "state.json"), "config", "set", "size", "9"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected size 9 to be rejected")
	}
}

func TestStatsEmpty(t *testing.T) {
	dir := t.TempDir()
	out := run(t, dir, "stats", "--size", "0", "--recent", "0")
	if !strings.Contains(out, "3×3") || !strings.Contains(out, "-") {
		t.Errorf("unexpected stats output:\n%s", out)
	}
	out = run(t, dir, "stats", "clear", "--size", "0")
	if !strings.Contains(out, "Cleared all solves") {
		t.Errorf("unexpected clear output: %s", out)
	}
}

func TestStatsShowsRecordedSolve(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := db.MigrateUp(); err != nil {
		t.Fatal(err)
	}
	store := storage.NewStore(db)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var moves []storage.MoveRecord
	for i, m := range scramble.MustParse("R U R' U' R U R' U'").Moves(3) {
		moves = append(moves, storage.NewMoveRecord(i, start, start.Add(time.Duration(i)*time.Second), m))
	}
	solve := &storage.Solve{
		Size:       3,
		StartedAt:  start,
		EndedAt:    start.Add(8 * time.Second),
		DurationMs: 8000,
	}
	if _, err := store.RecordSolve(solve, moves); err != nil {
		t.Fatal(err)
	}
	store.Close()

	out := run(t, dir, "stats", "--size", "3", "--recent", "5")
	if !strings.Contains(out, "0:08") || !strings.Contains(out, solve.SolveID[:8]) {
		t.Errorf("stats missing solve:\n%s", out)
	}

	out = run(t, dir, "stats", "show", solve.SolveID[:8])
	for _, want := range []string{"Moves:       8", "Turns/sec:   1.00", "R U R' U'"} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}
	statsRecent = 0
	statsSize = 0
}
