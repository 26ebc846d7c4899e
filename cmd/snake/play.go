package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play snake",
	Long: `Start playing. The variant defaults to "snake".

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space/Esc       - Pause
  +/-               - Faster/slower
  R                 - Restart (after game over)
  Ctrl+S            - Screenshot
  ?                 - Full help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slow start, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Fast start at 70% difficulty, progresses to max
  fixed  - No progression, the speed only changes with +/-

Examples:
  snake play
  snake play snake_classic
  snake play --difficulty hard
  snake play --config ./my-snake.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "snake"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'snake list' to see available games", gameID)
	}

	snakeCfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := snake.SetConfig(snakeCfg); err != nil {
		return err
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	// Open run storage; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: runs will not be recorded: %v\n", err)
		logger.Warn("cannot open runs database", "path", flagDBPath, "error", err)
		snake.SetRunSink(replay.NewSink(nil, logger))
	} else {
		defer store.Close()
		snake.SetRunSink(replay.NewSink(store, logger))
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	logger.Info("starting", "game", gameID, "seed", flagSeed, "difficulty", flagDifficulty)
	if err := tui.Run(game, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig builds the driver configuration from the terminal size and
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
