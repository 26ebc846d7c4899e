package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsPlain bool
	flagRunsStats bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Browse recorded runs",
	Long: `List recorded runs, newest first. In a terminal this opens an
interactive browser; pick a run with Enter to watch it.

Examples:
  snake runs
  snake runs snake_classic --plain
  snake runs --stats
  snake runs snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to list in plain mode")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a table instead of the interactive browser")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-variant statistics")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete recorded runs (of the variant, or all)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q, run 'snake list' to see available games", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagRunsClear:
		n, err := store.DeleteRuns(gameID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d runs.\n", n)
		return nil
	case flagRunsStats:
		return printStats(out, store)
	case flagRunsPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		runs, err := store.RecentRuns(gameID, flagRunsLimit)
		if err != nil {
			return err
		}
		printRuns(out, runs)
		return nil
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	id, err := tui.BrowseRuns(store, width, height)
	if err != nil || id == "" {
		return err
	}

	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	return watchRun(run)
}

// printRuns writes runs as a plain table.
func printRuns(out io.Writer, runs []replay.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'snake play' to record the first one!")
		return
	}

	fmt.Fprintf(out, "  %-36s  %-13s  %5s  %4s  %6s  %-14s  %s\n", "Run", "Game", "Score", "Len", "Ticks", "End", "Date")
	fmt.Fprintf(out, "  %-36s  %-13s  %5s  %4s  %6s  %-14s  %s\n", "---", "----", "-----", "---", "-----", "---", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-36s  %-13s  %5d  %4d  %6d  %-14s  %s\n",
			r.ID, r.GameID, r.Score, r.Length, r.Ticks, r.EndReason,
			r.FinishedAt.Local().Format("2006-01-02 15:04"))
	}
}

// printStats writes per-variant aggregates.
func printStats(out io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	printed := false
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		printed = true
		fmt.Fprintf(out, "%s\n", g.Title)
		fmt.Fprintf(out, "  Games:        %d\n", s.GamesCount)
		fmt.Fprintf(out, "  Best:         %d\n", s.HighScore)
		fmt.Fprintf(out, "  Average:      %.1f\n", s.AvgScore)
		fmt.Fprintf(out, "  Total:        %d\n", s.TotalScore)
		fmt.Fprintf(out, "  Longest run:  %d ticks\n", s.LongestRun)
		fmt.Fprintf(out, "  Last played:  %s\n", s.LastPlayed.Local().Format("2006-01-02 15:04"))
		fmt.Fprintln(out)
	}
	if !printed {
		fmt.Fprintln(out, "No runs recorded yet.")
	}
	return nil
}
