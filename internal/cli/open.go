package cli

import (
	"fmt"

	"github.com/SeamusWaldron/cubeplay/internal/config"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

// openStateFile loads the preferences from --config or the default path.
func openStateFile() (*config.StateFile, error) {
	var (
		sf  *config.StateFile
		err error
	)
	if configPath != "" {
		sf, err = config.NewStateFile(configPath)
	} else {
		sf, err = config.NewDefaultStateFile()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return sf, nil
}

// resolveDBPath picks --db, then the preferences, then the default.
func resolveDBPath(prefs *config.StateFile) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if prefs != nil && prefs.DBPath() != "" {
		return prefs.DBPath(), nil
	}
	return storage.DefaultDBPath()
}

// openStore opens and migrates the database.
func openStore(prefs *config.StateFile) (*storage.Store, error) {
	path, err := resolveDBPath(prefs)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(path, storage.WithLogger(log.WithField("component", "storage")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage.NewStore(db), nil
}
