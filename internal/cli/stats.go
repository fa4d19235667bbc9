package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay/internal/analysis"
	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var (
	statsSize   int
	statsRecent int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show solve statistics",
	Long: `Show best time, solve count and mean of the recent solves for each
cube size.

Examples:
  cubeplay stats
  cubeplay stats --size 3 --recent 10
  cubeplay stats clear --size 4`,
	RunE: runStats,
}

var statsShowCmd = &cobra.Command{
	Use:   "show <solve-id>",
	Short: "Analyse a recorded solve",
	Long: `Analyse the moves of a recorded solve: pace, pauses, wasted moves and
repeated sequences. A unique prefix of the solve ID is enough.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatsShow,
}

var statsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete recorded solves",
	RunE:  runStatsClear,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsShowCmd)
	statsCmd.AddCommand(statsClearCmd)
	statsCmd.Flags().IntVar(&statsSize, "size", 0, "Only this cube size")
	statsCmd.Flags().IntVar(&statsRecent, "recent", 0, "Also list this many recent solves")
	statsClearCmd.Flags().IntVar(&statsSize, "size", 0, "Only this cube size (default: all)")
}

func runStats(cmd *cobra.Command, args []string) error {
	prefs, err := openStateFile()
	if err != nil {
		return err
	}
	store, err := openStore(prefs)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	sizes := []int{statsSize}
	if statsSize == 0 {
		sizes = nil
		for s := cube.MinSize; s <= cube.MaxSize; s++ {
			sizes = append(sizes, s)
		}
	}

	fmt.Fprintf(out, "%-6s %6s %8s %8s %8s %8s %8s\n", "Size", "Solves", "Best", "Mean", "Ao5", "Ao12", "Trend")
	for _, size := range sizes {
		sc, err := store.Scores.Get(size)
		if err != nil {
			return err
		}
		tr := analysis.AnalyzeTrends(sc)
		ao5, _ := tr.Rolling(5)
		ao12, _ := tr.Rolling(12)
		trend := "-"
		if len(sc.Recent) >= 4 {
			trend = fmt.Sprintf("%+.0f%%", tr.ImprovementPct)
		}
		fmt.Fprintf(out, "%-6s %6d %8s %8s %8s %8s %8s\n",
			fmt.Sprintf("%d×%d", size, size), sc.Total, formatTime(sc.Best), formatTime(sc.Mean()),
			formatTime(ao5), formatTime(ao12), trend)
	}

	if statsRecent > 0 {
		solves, err := store.Solves.List(statsSize, statsRecent)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recent solves:")
		for _, s := range solves {
			printSolve(cmd, s)
		}
	}
	return nil
}

func printSolve(cmd *cobra.Command, s storage.Solve) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s  %d×%d  %8s  %3d moves  %s\n",
		s.EndedAt.Local().Format("2006-01-02 15:04"), s.Size, s.Size,
		formatTime(s.Duration()), s.MoveCount, s.SolveID[:8])
}

func runStatsClear(cmd *cobra.Command, args []string) error {
	prefs, err := openStateFile()
	if err != nil {
		return err
	}
	store, err := openStore(prefs)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Scores.Clear(statsSize); err != nil {
		return err
	}
	if statsSize == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared all solves")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d×%d solves\n", statsSize, statsSize)
	}
	return nil
}

func runStatsShow(cmd *cobra.Command, args []string) error {
	prefs, err := openStateFile()
	if err != nil {
		return err
	}
	store, err := openStore(prefs)
	if err != nil {
		return err
	}
	defer store.Close()

	solve, err := findSolve(store, args[0])
	if err != nil {
		return err
	}
	moves, err := store.Moves.GetBySolve(solve.SolveID)
	if err != nil {
		return err
	}

	sum := analysis.Summarize(*solve, moves)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Solve %s (%d×%d)\n", sum.SolveID, sum.Size, sum.Size)
	fmt.Fprintf(out, "  Time:        %s\n", formatTime(sum.Duration()))
	fmt.Fprintf(out, "  Moves:       %d (%d after merging, %.0f%%)\n",
		sum.TotalMoves, sum.OptimizedMoves, sum.Efficiency*100)
	fmt.Fprintf(out, "  Turns/sec:   %.2f\n", sum.TPSOverall)
	fmt.Fprintf(out, "  Pauses:      %d over %dms, longest %dms\n",
		sum.PauseCount, analysis.PauseThresholdMs, sum.LongestPauseMs)
	fmt.Fprintf(out, "  Axes:        x %d, y %d, z %d, rotations %d\n",
		sum.AxisCounts[0], sum.AxisCounts[1], sum.AxisCounts[2], sum.Rotations)

	rep := sum.Repetitions
	fmt.Fprintf(out, "  Wasted:      %d (%d cancellations, %d merges)\n",
		rep.TotalWastedMoves, len(rep.ImmediateCancellations), len(rep.MergeOpportunities))
	for _, p := range rep.BackAndForthPatterns {
		fmt.Fprintf(out, "  Repeated:    (%s)×%d at move %d\n", strings.Join(p.Pattern, " "), p.Count, p.StartIndex+1)
	}
	for _, ng := range sum.NGrams {
		fmt.Fprintf(out, "  Sequence:    %-20s ×%d\n", strings.Join(ng.Sequence, " "), ng.Count)
	}
	return nil
}

// findSolve looks a solve up by ID or unique ID prefix.
func findSolve(store *storage.Store, id string) (*storage.Solve, error) {
	s, err := store.Solves.Get(id)
	if err != nil || s != nil {
		return s, err
	}
	all, err := store.Solves.List(0, -1)
	if err != nil {
		return nil, err
	}
	var match *storage.Solve
	for i := range all {
		if strings.HasPrefix(all[i].SolveID, id) {
			if match != nil {
				return nil, fmt.Errorf("solve ID %q is ambiguous", id)
			}
			match = &all[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("solve %q not found", id)
	}
	return match, nil
}
