package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
)

// SavedGame is the in-progress game restored on the next start.
type SavedGame struct {
	State     cube.State
	Elapsed   time.Duration
	Scramble  string
	UpdatedAt time.Time
}

// GameRepository stores the single saved game slot.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// Save replaces the saved game.
func (r *GameRepository) Save(g SavedGame) error {
	data, err := json.Marshal(g.State)
	if err != nil {
		return fmt.Errorf("failed to encode cube state: %w", err)
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = time.Now()
	}

	_, err = r.db.Exec(`
		INSERT INTO saved_game (slot, size, state_json, elapsed_ms, scramble_text, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			size = excluded.size,
			state_json = excluded.state_json,
			elapsed_ms = excluded.elapsed_ms,
			scramble_text = excluded.scramble_text,
			updated_at = excluded.updated_at
	`, g.State.Size, string(data), g.Elapsed.Milliseconds(), g.Scramble, g.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	r.db.log.WithField("size", g.State.Size).Debug("saved game")
	return nil
}

// Load returns the saved game, or nil if there is none.
func (r *GameRepository) Load() (*SavedGame, error) {
	var (
		g          SavedGame
		data       string
		elapsedMs  int64
		updatedStr string
	)
	err := r.db.QueryRow(`
		SELECT state_json, elapsed_ms, scramble_text, updated_at
		FROM saved_game WHERE slot = 1
	`).Scan(&data, &elapsedMs, &g.Scramble, &updatedStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &g.State); err != nil {
		return nil, fmt.Errorf("failed to decode cube state: %w", err)
	}
	g.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	g.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &g, nil
}

// Clear removes the saved game.
func (r *GameRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM saved_game"); err != nil {
		return fmt.Errorf("failed to clear saved game: %w", err)
	}
	return nil
}
