package cli

import (
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/config"
	"github.com/SeamusWaldron/cubeplay/internal/tui"
)

var (
	playSize       int
	playFeel       int
	playDifficulty int
	playTheme      string
	playNew        bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the interactive cube. A saved game of the same size is resumed,
otherwise a new scramble is played.

Controls:
  Mouse drag    - Turn a layer, or the whole cube when dragging off it
  u d l r f b   - Turn a face (shift reverses)
  x y z         - Rotate the whole cube (shift reverses)
  s             - New scrambled game
  n             - Reset to a solved cube for free play
  2-5           - Change cube size
  e             - Cycle animation feel
  t             - Cycle colour theme
  q/Esc         - Save and quit

Flags override the saved preferences and are stored as the new defaults.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVar(&playSize, "size", 0, "Cube size 2-5 (default: saved preference)")
	playCmd.Flags().IntVar(&playFeel, "feel", -1, "Animation feel: 0 snappy, 1 smooth, 2 bouncy")
	playCmd.Flags().IntVar(&playDifficulty, "difficulty", -1, "Scramble difficulty 0-2")
	playCmd.Flags().StringVar(&playTheme, "theme", "", "Colour theme")
	playCmd.Flags().BoolVar(&playNew, "new", false, "Discard any saved game and start a new one")
}

// applyPlayFlags stores flag overrides as preferences.
func applyPlayFlags(cmd *cobra.Command, prefs *config.StateFile) error {
	flags := cmd.Flags()
	if flags.Changed("size") {
		if err := prefs.SetCubeSize(playSize); err != nil {
			return err
		}
	}
	if flags.Changed("feel") {
		if err := prefs.SetFeel(playFeel); err != nil {
			return err
		}
	}
	if flags.Changed("difficulty") {
		if err := prefs.SetDifficulty(playDifficulty); err != nil {
			return err
		}
	}
	if flags.Changed("theme") {
		if err := prefs.SetTheme(playTheme); err != nil {
			return err
		}
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	prefs, err := openStateFile()
	if err != nil {
		return err
	}
	if err := applyPlayFlags(cmd, prefs); err != nil {
		return err
	}

	store, err := openStore(prefs)
	if err != nil {
		return err
	}
	defer store.Close()

	p := prefs.Preferences()
	game, err := cubeplay.New(
		cubeplay.WithSize(p.CubeSize),
		cubeplay.WithFeel(p.Feel),
		cubeplay.WithDifficulty(p.Difficulty),
		cubeplay.WithTheme(p.Theme),
		cubeplay.WithStore(store),
		cubeplay.WithLogger(log.WithField("component", "game")),
	)
	if err != nil {
		return err
	}

	if playNew {
		if err := store.ClearGame(); err != nil {
			return err
		}
	}
	resumed, err := game.Start()
	if err != nil {
		return err
	}
	log.WithField("resumed", resumed).Info("starting play")

	return tui.Run(game, prefs, log.WithField("component", "tui"))
}
