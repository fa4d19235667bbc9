// Package config manages the persistent preferences file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/theme"
)

// ErrInvalidPreference is returned when a setter is given an out-of-range value.
var ErrInvalidPreference = errors.New("config: invalid preference")

// Preferences is the persistent application state.
type Preferences struct {
	CubeSize   int    `json:"cube_size"`
	Feel       int    `json:"feel"`
	Difficulty int    `json:"difficulty"`
	Theme      string `json:"theme"`
	DBPath     string `json:"db_path,omitempty"`
}

// Defaults returns the preferences of a fresh install.
func Defaults() Preferences {
	return Preferences{
		CubeSize:   3,
		Feel:       0,
		Difficulty: 1,
		Theme:      theme.Default,
	}
}

// normalize replaces out-of-range values with their defaults.
func (p *Preferences) normalize() {
	d := Defaults()
	if p.CubeSize < cube.MinSize || p.CubeSize > cube.MaxSize {
		p.CubeSize = d.CubeSize
	}
	if p.Feel < 0 || p.Feel > 2 {
		p.Feel = d.Feel
	}
	if p.Difficulty < 0 || p.Difficulty > 2 {
		p.Difficulty = d.Difficulty
	}
	if _, err := theme.Get(p.Theme); err != nil {
		p.Theme = d.Theme
	}
}

// StateFile manages the preferences file.
type StateFile struct {
	path  string
	prefs Preferences
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubeplay", "state.json"), nil
}

// NewStateFile creates a state file manager, loading the file if it exists.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path, prefs: Defaults()}

	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Path returns the state file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// Load loads the preferences from disk. Missing or invalid fields keep
// their defaults.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	p := Defaults()
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	p.normalize()
	sf.prefs = p
	return nil
}

// Save saves the preferences to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Preferences returns the current preferences.
func (sf *StateFile) Preferences() Preferences {
	return sf.prefs
}

// SetCubeSize sets the cube size.
func (sf *StateFile) SetCubeSize(size int) error {
	if size < cube.MinSize || size > cube.MaxSize {
		return fmt.Errorf("%w: cube size %d", ErrInvalidPreference, size)
	}
	sf.prefs.CubeSize = size
	return sf.Save()
}

// SetFeel sets the flip feel.
func (sf *StateFile) SetFeel(feel int) error {
	if feel < 0 || feel > 2 {
		return fmt.Errorf("%w: feel %d", ErrInvalidPreference, feel)
	}
	sf.prefs.Feel = feel
	return sf.Save()
}

// SetDifficulty sets the scramble difficulty.
func (sf *StateFile) SetDifficulty(d int) error {
	if d < 0 || d > 2 {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidPreference, d)
	}
	sf.prefs.Difficulty = d
	return sf.Save()
}

// SetTheme sets the colour theme.
func (sf *StateFile) SetTheme(name string) error {
	if _, err := theme.Get(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPreference, err)
	}
	sf.prefs.Theme = name
	return sf.Save()
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.prefs.DBPath = path
	return sf.Save()
}

// DBPath returns the database path, or "" for the default.
func (sf *StateFile) DBPath() string {
	return sf.prefs.DBPath
}
