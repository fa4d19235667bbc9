package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show preferences, database and saved game",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	prefs, err := openStateFile()
	if err != nil {
		return err
	}
	p := prefs.Preferences()
	fmt.Fprintf(out, "Preferences: %s\n", prefs.Path())
	fmt.Fprintf(out, "  Size:       %d\n", p.CubeSize)
	fmt.Fprintf(out, "  Feel:       %d\n", p.Feel)
	fmt.Fprintf(out, "  Difficulty: %d\n", p.Difficulty)
	fmt.Fprintf(out, "  Theme:      %s\n", p.Theme)

	store, err := openStore(prefs)
	if err != nil {
		return err
	}
	defer store.Close()

	version, err := store.DB().CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Database:    %s (schema v%d of %d)\n", store.DB().Path(), version, storage.LatestVersion())

	g, err := store.LoadGame()
	if err != nil {
		return err
	}
	if g == nil {
		fmt.Fprintln(out, "Saved game:  none")
		return nil
	}
	fmt.Fprintf(out, "Saved game:  %d×%d, %s elapsed, saved %s\n",
		g.State.Size, g.State.Size, formatTime(g.Elapsed), g.UpdatedAt.Local().Format("2006-01-02 15:04"))
	if g.Scramble != "" {
		fmt.Fprintf(out, "  Scramble:   %s\n", g.Scramble)
	}
	return nil
}
