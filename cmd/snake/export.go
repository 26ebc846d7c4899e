package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/export"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagExportGame string

var exportCmd = &cobra.Command{
	Use:   "export <out.parquet>",
	Short: "Export recorded runs to Parquet",
	Long: `Replay every recorded run and write one Parquet row per tick:
the snake body, the food, the move and the score at that tick.

Examples:
  snake export runs.parquet
  snake export classic.parquet --game snake_classic`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportGame, "game", "", "Only export runs of this variant")
}

func runExport(cmd *cobra.Command, args []string) error {
	if flagExportGame != "" && !registry.Exists(flagExportGame) {
		return fmt.Errorf("unknown game %q, run 'snake list' to see available games", flagExportGame)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.AllRuns(flagExportGame)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs to export.")
		return nil
	}

	rows, err := export.WriteRunsParquet(args[0], runs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows from %d runs to %s\n", rows, len(runs), args[0])
	return nil
}
