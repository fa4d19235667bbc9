package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RecentLimit is how many solve times Scores keeps per size.
const RecentLimit = 100

// Scores summarises the solves of one cube size.
type Scores struct {
	Size   int
	Total  int
	Best   time.Duration   // zero when there are no solves
	Recent []time.Duration // oldest first, at most RecentLimit
}

// Mean returns the mean of the recent times.
func (s Scores) Mean() time.Duration {
	if len(s.Recent) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range s.Recent {
		sum += d
	}
	return sum / time.Duration(len(s.Recent))
}

// ScoreRepository derives per-size statistics from the solves table.
type ScoreRepository struct {
	db *DB
}

// NewScoreRepository creates a new score repository.
func NewScoreRepository(db *DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Get returns the scores for a cube size.
func (r *ScoreRepository) Get(size int) (Scores, error) {
	s := Scores{Size: size}

	var best sql.NullInt64
	err := r.db.QueryRow(`
		SELECT COUNT(*), MIN(duration_ms) FROM solves WHERE size = ?
	`, size).Scan(&s.Total, &best)
	if err != nil {
		return s, fmt.Errorf("failed to get score totals: %w", err)
	}
	if best.Valid {
		s.Best = time.Duration(best.Int64) * time.Millisecond
	}

	rows, err := r.db.Query(`
		SELECT duration_ms FROM (
			SELECT duration_ms, ended_at FROM solves
			WHERE size = ?
			ORDER BY ended_at DESC
			LIMIT ?
		) ORDER BY ended_at ASC
	`, size, RecentLimit)
	if err != nil {
		return s, fmt.Errorf("failed to get recent scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return s, fmt.Errorf("failed to scan score: %w", err)
		}
		s.Recent = append(s.Recent, time.Duration(ms)*time.Millisecond)
	}
	return s, rows.Err()
}

// Clear deletes every solve of a cube size, or of all sizes when size is 0.
func (r *ScoreRepository) Clear(size int) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE ? = 0 OR size = ?", size, size)
	if err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}
	return nil
}
