// Package cli implements the command-line interface for cubeplay.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	configPath string
	logLevel   string
	logFile    string
)

// log is configured from the global flags before any command runs.
var log = newDiscardLogger()

// logOut is the open --log-file, closed after the command.
var logOut io.Closer

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeplay",
	Short: "Twisty puzzle cubes in the terminal",
	Long: `cubeplay - N×N×N twisty puzzle cubes from 2×2×2 to 5×5×5.

Turn layers by dragging with the mouse or with the keyboard, race the
timer against a scramble, and keep per-size best times.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logOut != nil {
			logOut.Close()
			logOut = nil
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubeplay/cubeplay.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Preferences file path (default: ~/.cubeplay/state.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of discarding them")
}

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// setupLogging applies --log-level and --log-file. Logs are discarded
// unless a file is given, since the terminal belongs to the TUI.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	if logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	logOut = f
	return nil
}
