package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewStateFileDefaults(t *testing.T) {
	sf, err := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got := sf.Preferences(); got != Defaults() {
		t.Errorf("preferences = %+v, want defaults", got)
	}
}

func TestStateFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := sf.SetCubeSize(4); err != nil {
		t.Fatal(err)
	}
	if err := sf.SetFeel(2); err != nil {
		t.Fatal(err)
	}
	if err := sf.SetDifficulty(0); err != nil {
		t.Fatal(err)
	}
	if err := sf.SetTheme("classic"); err != nil {
		t.Fatal(err)
	}
	if err := sf.SetDBPath("/tmp/x.db"); err != nil {
		t.Fatal(err)
	}

	again, err := NewStateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Preferences{CubeSize: 4, Feel: 2, Difficulty: 0, Theme: "classic", DBPath: "/tmp/x.db"}
	if got := again.Preferences(); got != want {
		t.Errorf("reloaded %+v, want %+v", got, want)
	}
}

func TestSettersRejectOutOfRange(t *testing.T) {
	sf, _ := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	for name, err := range map[string]error{
		"size":       sf.SetCubeSize(6),
		"feel":       sf.SetFeel(3),
		"difficulty": sf.SetDifficulty(-1),
		"theme":      sf.SetTheme("neon"),
	} {
		if !errors.Is(err, ErrInvalidPreference) {
			t.Errorf("%s: expected ErrInvalidPreference, got %v", name, err)
		}
	}
	if sf.Preferences() != Defaults() {
		t.Errorf("rejected setters changed preferences: %+v", sf.Preferences())
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	data := `{"cube_size": 9, "feel": 1, "theme": "neon"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	p := sf.Preferences()
	if p.CubeSize != 3 || p.Feel != 1 || p.Difficulty != 1 || p.Theme != "cube" {
		t.Errorf("normalized preferences = %+v", p)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := NewStateFile(path); err == nil {
		t.Error("expected parse error")
	}
}
