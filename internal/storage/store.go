package storage

import (
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
)

// Store bundles the repositories a game persists through.
type Store struct {
	db     *DB
	Games  *GameRepository
	Solves *SolveRepository
	Moves  *MoveRepository
	Scores *ScoreRepository
}

// NewStore creates a store over an open, migrated database.
func NewStore(db *DB) *Store {
	return &Store{
		db:     db,
		Games:  NewGameRepository(db),
		Solves: NewSolveRepository(db),
		Moves:  NewMoveRepository(db),
		Scores: NewScoreRepository(db),
	}
}

// DB returns the underlying database.
func (s *Store) DB() *DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame stores the in-progress game.
func (s *Store) SaveGame(state cube.State, elapsed time.Duration, scramble string) error {
	return s.Games.Save(SavedGame{State: state, Elapsed: elapsed, Scramble: scramble})
}

// LoadGame returns the saved game, or nil if there is none.
func (s *Store) LoadGame() (*SavedGame, error) {
	return s.Games.Load()
}

// ClearGame removes the saved game.
func (s *Store) ClearGame() error {
	return s.Games.Clear()
}

// RecordSolve stores a finished solve and reports whether it is the best
// time for its size.
func (s *Store) RecordSolve(solve *Solve, moves []MoveRecord) (bool, error) {
	prev, err := s.Scores.Get(solve.Size)
	if err != nil {
		return false, err
	}
	if err := s.Solves.Create(solve, moves); err != nil {
		return false, err
	}
	return prev.Total == 0 || solve.Duration() < prev.Best, nil
}
