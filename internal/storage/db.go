// Package storage provides SQLite persistence for saved games and solve
// history.
package storage

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection.
type DB struct {
	*sql.DB
	path string
	log  logrus.FieldLogger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for migration and repository messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(db *DB) {
		db.log = l
	}
}

// DefaultDBPath returns the default database path in the user's home directory.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubeplay", "cubeplay.db"), nil
}

// Open opens (or creates) the SQLite database at the given path.
func Open(dbPath string, opts ...Option) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// foreign_keys is per connection.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	l := logrus.New()
	l.SetOutput(io.Discard)
	db := &DB{DB: conn, path: dbPath, log: l}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// OpenDefault opens the database at the default path and migrates it.
func OpenDefault(opts ...Option) (*DB, error) {
	path, err := DefaultDBPath()
	if err != nil {
		return nil, err
	}
	db, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// MigrateUp applies all pending migrations.
func (db *DB) MigrateUp() error {
	before, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	if err := applyMigrations(db.DB); err != nil {
		return err
	}
	if before < LatestVersion() {
		db.log.WithFields(logrus.Fields{
			"from": before,
			"to":   LatestVersion(),
			"path": db.path,
		}).Info("migrated database")
	}
	return nil
}

// CurrentVersion returns the current schema version.
func (db *DB) CurrentVersion() (int, error) {
	return schemaVersion(db.DB)
}

// Transaction executes a function within a database transaction.
func (db *DB) Transaction(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
