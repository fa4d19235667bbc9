package tui

import (
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/controls"
	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/raycast"
	"github.com/SeamusWaldron/cubeplay/internal/theme"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestModel(t *testing.T) (*Model, *time.Time) {
	t.Helper()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	g, err := cubeplay.New(
		cubeplay.WithClock(func() time.Time { return now }),
		cubeplay.WithRand(rand.New(rand.NewPCG(7, 7))),
	)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(g, nil, quietLogger())
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 23})
	return m, &now
}

func runFrames(m *Model, now *time.Time, n int) {
	for i := 0; i < n; i++ {
		*now = now.Add(FrameInterval)
		m.Update(frameMsg(*now))
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMove(t *testing.T) {
	tests := []struct {
		key  string
		size int
		want cube.Move
	}{
		{"u", 3, cube.Move{Axis: vecmath.Y, Turns: -1, Layer: 1}},
		{"U", 3, cube.Move{Axis: vecmath.Y, Turns: 1, Layer: 1}},
		{"l", 3, cube.Move{Axis: vecmath.X, Turns: 1, Layer: -1}},
		{"f", 4, cube.Move{Axis: vecmath.Z, Turns: -1, Layer: 2}},
		{"x", 3, cube.Move{Axis: vecmath.X, Turns: -1, Whole: true}},
		{"Y", 3, cube.Move{Axis: vecmath.Y, Turns: 1, Whole: true}},
	}
	for _, tt := range tests {
		got, ok := KeyMove(tt.key, tt.size)
		if !ok || got != tt.want {
			t.Errorf("KeyMove(%q, %d) = %v, %v; want %v", tt.key, tt.size, got, ok, tt.want)
		}
	}
	for _, k := range []string{"q", "1", "ctrl+u", ""} {
		if _, ok := KeyMove(k, 3); ok {
			t.Errorf("KeyMove(%q) should not map", k)
		}
	}
}

func TestRasterize(t *testing.T) {
	c := cube.Generate(3)
	th, _ := theme.Get(theme.Default)
	c.Recolor(th.Palette())
	cam := raycast.NewCamera(raycast.DefaultFOV, 1)

	cv := Rasterize(c, cam, th.Background, 40, 40)
	if cv.At(0, 0) != th.Background || cv.At(39, 39) != th.Background {
		t.Error("corners should show the background")
	}
	if cv.At(20, 20) == th.Background {
		t.Error("centre should hit the cube")
	}

	out := cv.Render()
	if lines := strings.Count(out, "\n") + 1; lines != 20 {
		t.Errorf("rendered %d lines, want 20", lines)
	}
}

func TestCellNDC(t *testing.T) {
	p := CellNDC(0, 0, 10, 5)
	want := vecmath.V2(-0.9, 0.8)
	if !vecmath.V3(p.X, p.Y, 0).ApproxEqual(vecmath.V3(want.X, want.Y, 0), 1e-9) {
		t.Errorf("CellNDC(0,0) = %v, want %v", p, want)
	}
}

func TestScrambleKeyStartsGame(t *testing.T) {
	m, now := newTestModel(t)
	m.Update(key("s"))
	if !m.game.Controls().Scrambling() {
		t.Fatal("s should start a scramble")
	}
	for i := 0; i < 2000 && m.game.Controls().Busy(); i++ {
		runFrames(m, now, 1)
	}
	if !m.game.Playing() || m.game.Solved() {
		t.Error("expected a scrambled game in progress")
	}

	view := m.View()
	if !strings.Contains(view, "cubeplay 3x3x3") || !strings.Contains(view, "0:00") {
		t.Errorf("unexpected header in view:\n%s", view)
	}
}

func TestKeysChangeSettings(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(key("4"))
	if m.game.Size() != 4 || !m.game.Controls().Enabled() {
		t.Errorf("size = %d, enabled = %v", m.game.Size(), m.game.Controls().Enabled())
	}
	m.Update(key("e"))
	if m.game.Feel() != 1 {
		t.Errorf("feel = %d", m.game.Feel())
	}
	m.Update(key("t"))
	if m.game.Theme().Name != "classic" {
		t.Errorf("theme = %s", m.game.Theme().Name)
	}
}

func TestKeyboardTurnAnimates(t *testing.T) {
	m, now := newTestModel(t)
	m.Update(key("n"))
	m.Update(key("r"))
	if m.game.Controls().State() != controls.Rotating {
		t.Fatalf("state = %v, want rotating", m.game.Controls().State())
	}
	runFrames(m, now, 30)
	if m.game.Controls().Busy() || m.game.Solved() {
		t.Error("R should have finished and left the cube unsolved")
	}
	m.Update(key("R"))
	runFrames(m, now, 30)
	if !m.game.Solved() {
		t.Error("R' should undo R")
	}
}

func TestMousePressStartsDrag(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(key("n"))
	m.Update(tea.MouseMsg{X: 20, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.game.Controls().State() != controls.Preparing {
		t.Fatalf("state = %v, want preparing", m.game.Controls().State())
	}
	m.Update(tea.MouseMsg{X: 20, Y: 11, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.game.Controls().State() != controls.Still {
		t.Errorf("state = %v, want still", m.game.Controls().State())
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("ctrl+c"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
