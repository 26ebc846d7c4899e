package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Verify or watch a recorded run",
	Long: `Re-simulate a recorded run from its seed and moves and check that it
reproduces the stored outcome. Any unique prefix of the run ID works.

Examples:
  snake replay 3f2a9c1e
  snake replay 3f2a9c1e --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the run back in the terminal")
}

func runReplay(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.RunByID(args[0])
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run matches %q, run 'snake runs' to list them", args[0])
	}
	if err != nil {
		return err
	}

	if flagWatch {
		return watchRun(run)
	}
	return verifyRun(cmd.OutOrStdout(), run)
}

// verifyRun re-simulates run and prints the outcome.
func verifyRun(out io.Writer, run replay.Run) error {
	fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.GameID)
	fmt.Fprintf(out, "  Finished:  %s\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  Seed:      %d\n", run.RunSeed)
	fmt.Fprintf(out, "  Score:     %d\n", run.Score)
	fmt.Fprintf(out, "  Length:    %d\n", run.Length)
	fmt.Fprintf(out, "  Ticks:     %d\n", run.Ticks)
	fmt.Fprintf(out, "  End:       %s\n", run.EndReason)
	fmt.Fprintln(out)

	if err := replay.Verify(run); err != nil {
		return fmt.Errorf("run does not replay: %w", err)
	}
	fmt.Fprintln(out, "Replay OK: the recorded moves reproduce this outcome.")
	return nil
}

// watchRun plays run back in the terminal.
func watchRun(run replay.Run) error {
	cfg, err := run.SnakeConfig()
	if err != nil {
		return err
	}
	moves, err := replay.DecodeMoves(run.Moves)
	if err != nil {
		return err
	}

	game, err := snake.NewPlayback(run.GameID, cfg, run.RunSeed, moves)
	if err != nil {
		return fmt.Errorf("cannot replay run %s: %w", run.ID, err)
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("watching run", "run", run.ID, "moves", len(moves))
	if err := tui.Run(game, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running replay: %w", err)
	}
	return nil
}
