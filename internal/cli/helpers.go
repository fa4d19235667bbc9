package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/anim"
	"github.com/SeamusWaldron/cubeplay/internal/config"
	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/export"
)

var errNoSavedGame = errors.New("no saved game")

type savedCube struct {
	state    cube.State
	elapsed  time.Duration
	scramble string
}

// loadSavedCube reads the saved game from the database.
func loadSavedCube(prefs *config.StateFile) (*savedCube, error) {
	store, err := openStore(prefs)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	g, err := store.LoadGame()
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errNoSavedGame
	}
	return &savedCube{state: g.State, elapsed: g.Elapsed, scramble: g.Scramble}, nil
}

func saveGLTF(path string, g *cubeplay.Game) error {
	if err := export.Save(path, g.Cube()); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	return nil
}

// formatTime renders a duration as the in-game clock does, or "-".
func formatTime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return anim.FormatClock(d)
}
