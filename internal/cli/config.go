package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or change preferences",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a preference (size, feel, difficulty, theme, db)",
	Long: `Set a preference.

Examples:
  cubeplay config set size 4
  cubeplay config set feel 2
  cubeplay config set theme classic
  cubeplay config set db /tmp/cubes.db`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	prefs, err := openStateFile()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	intValue := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number: %w", key, err)
		}
		return n, nil
	}

	switch key {
	case "size", "feel", "difficulty":
		n, err := intValue()
		if err != nil {
			return err
		}
		switch key {
		case "size":
			err = prefs.SetCubeSize(n)
		case "feel":
			err = prefs.SetFeel(n)
		default:
			err = prefs.SetDifficulty(n)
		}
		if err != nil {
			return err
		}
	case "theme":
		if err := prefs.SetTheme(value); err != nil {
			return err
		}
	case "db":
		if err := prefs.SetDBPath(value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown preference %q", key)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}
