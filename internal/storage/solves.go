package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// timeFormat sorts lexically in UTC.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Solve represents a finished solve in the database.
type Solve struct {
	SolveID      string
	Size         int
	StartedAt    time.Time
	EndedAt      time.Time
	DurationMs   int64
	ScrambleText string
	MoveCount    int
}

// Duration returns the solve time.
func (s Solve) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create records a solve and its moves in one transaction. A new UUID is
// assigned when SolveID is empty.
func (r *SolveRepository) Create(s *Solve, moves []MoveRecord) error {
	if s.SolveID == "" {
		s.SolveID = uuid.New().String()
	}
	if s.MoveCount == 0 {
		s.MoveCount = len(moves)
	}

	err := r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO solves (solve_id, size, started_at, ended_at, duration_ms, scramble_text, move_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.SolveID, s.Size,
			s.StartedAt.UTC().Format(timeFormat),
			s.EndedAt.UTC().Format(timeFormat),
			s.DurationMs, s.ScrambleText, s.MoveCount)
		if err != nil {
			return fmt.Errorf("failed to create solve: %w", err)
		}
		return insertMoves(tx, s.SolveID, moves)
	})
	if err != nil {
		return err
	}

	r.db.log.WithFields(logrus.Fields{
		"solve_id": s.SolveID,
		"size":     s.Size,
		"duration": s.Duration(),
	}).Info("recorded solve")
	return nil
}

// Get retrieves a solve by ID, or nil if it does not exist.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`
		SELECT solve_id, size, started_at, ended_at, duration_ms, scramble_text, move_count
		FROM solves WHERE solve_id = ?
	`, solveID)

	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// List retrieves the most recent solves of one size, newest first. A size of
// zero lists every size and a negative limit removes the limit.
func (r *SolveRepository) List(size, limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT solve_id, size, started_at, ended_at, duration_ms, scramble_text, move_count
		FROM solves
		WHERE ? = 0 OR size = ?
		ORDER BY ended_at DESC
		LIMIT ?
	`, size, size, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}
	return solves, rows.Err()
}

// Delete deletes a solve and its moves.
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (*Solve, error) {
	var (
		s                  Solve
		startedAt, endedAt string
	)
	err := row.Scan(&s.SolveID, &s.Size, &startedAt, &endedAt, &s.DurationMs, &s.ScrambleText, &s.MoveCount)
	if err != nil {
		return nil, err
	}
	s.StartedAt, _ = time.Parse(timeFormat, startedAt)
	s.EndedAt, _ = time.Parse(timeFormat, endedAt)
	return &s, nil
}
