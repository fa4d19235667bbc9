package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// MoveRecord is one move of a recorded solve.
type MoveRecord struct {
	MoveIndex int
	TsMs      int64 // milliseconds since the solve started
	Move      cube.Move
}

// NewMoveRecord stamps a move relative to the solve start.
func NewMoveRecord(index int, start, at time.Time, m cube.Move) MoveRecord {
	return MoveRecord{MoveIndex: index, TsMs: at.Sub(start).Milliseconds(), Move: m}
}

func insertMoves(tx *sql.Tx, solveID string, moves []MoveRecord) error {
	for _, m := range moves {
		_, err := tx.Exec(`
			INSERT INTO solve_moves (solve_id, move_index, ts_ms, axis, layer, turns, whole)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, solveID, m.MoveIndex, m.TsMs, m.Move.Axis.String(), m.Move.Layer, m.Move.Turns, m.Move.Whole)
		if err != nil {
			return fmt.Errorf("failed to create move %d: %w", m.MoveIndex, err)
		}
	}
	return nil
}

// MoveRepository reads the moves of recorded solves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// GetBySolve retrieves all moves for a solve in order.
func (r *MoveRepository) GetBySolve(solveID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_index, ts_ms, axis, layer, turns, whole
		FROM solve_moves
		WHERE solve_id = ?
		ORDER BY move_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var (
			m    MoveRecord
			axis string
		)
		if err := rows.Scan(&m.MoveIndex, &m.TsMs, &axis, &m.Move.Layer, &m.Move.Turns, &m.Move.Whole); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		a, err := vecmath.ParseAxis(axis)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move %d: %w", m.MoveIndex, err)
		}
		m.Move.Axis = a
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Count returns the number of moves for a solve.
func (r *MoveRepository) Count(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM solve_moves WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves strips the bookkeeping from records.
func ToMoves(records []MoveRecord) []cube.Move {
	moves := make([]cube.Move, len(records))
	for i, r := range records {
		moves[i] = r.Move
	}
	return moves
}
