package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
)

var (
	applySize   int
	applyExport string
	applyShow   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <notation>...",
	Short: "Apply moves to a solved cube and report the result",
	Long: `Apply a move sequence to a solved cube without animation and report
whether the cube ends up solved.

Examples:
  cubeplay apply "U R' F2"
  cubeplay apply U R\' F2 F2 R U\'
  cubeplay apply --size 4 "R u2 F'" --export cube.glb`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().IntVar(&applySize, "size", 3, "Cube size 2-5")
	applyCmd.Flags().StringVarP(&applyExport, "export", "o", "", "Also export the result as glTF (.gltf or .glb)")
	applyCmd.Flags().BoolVar(&applyShow, "show", false, "Print piece positions")
}

func runApply(cmd *cobra.Command, args []string) error {
	game, err := cubeplay.New(
		cubeplay.WithSize(applySize),
		cubeplay.WithLogger(log.WithField("component", "game")),
	)
	if err != nil {
		return err
	}

	notation := strings.Join(args, " ")
	if err := game.ApplyNotation(notation); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Applied: %s\n", notation)
	fmt.Fprintf(out, "Solved:  %v\n", game.Solved())
	if applyShow {
		fmt.Fprintln(out)
		fmt.Fprint(out, game.Cube().String())
	}

	if applyExport != "" {
		if err := saveGLTF(applyExport, game); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported: %s\n", applyExport)
	}
	return nil
}
