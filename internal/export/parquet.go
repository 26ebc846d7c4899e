// Package export writes recorded runs as per-tick Parquet datasets for
// offline analysis.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

// TickRow is the state after one tick of a run.
//
// Move is the heading taken on this tick: 0=Up, 1=Down, 2=Left, 3=Right.
// Body is head first. FinalScore repeats the run's outcome on every row so a
// single row is a complete training sample.
type TickRow struct {
	RunID      string  `parquet:"run_id,dict"`
	GameID     string  `parquet:"game_id,dict"`
	Tick       int32   `parquet:"tick"`
	GridSize   int32   `parquet:"grid_size"`
	Move       int32   `parquet:"move"`
	BodyX      []int32 `parquet:"body_x"`
	BodyY      []int32 `parquet:"body_y"`
	FoodX      int32   `parquet:"food_x"`
	FoodY      int32   `parquet:"food_y"`
	Score      int32   `parquet:"score"`
	Alive      bool    `parquet:"alive"`
	EndReason  string  `parquet:"end_reason,dict"`
	FinalScore int32   `parquet:"final_score"`
}

func moveIndex(d snake.Direction) int32 {
	switch d {
	case snake.Up:
		return 0
	case snake.Down:
		return 1
	case snake.Left:
		return 2
	case snake.Right:
		return 3
	default:
		return -1
	}
}

// RunRows re-simulates run and returns one row per move.
func RunRows(run replay.Run) ([]TickRow, error) {
	moves, err := replay.DecodeMoves(run.Moves)
	if err != nil {
		return nil, err
	}

	rows := make([]TickRow, 0, len(moves))
	_, err = replay.Simulate(run, func(i int, st snake.State) {
		row := TickRow{
			RunID:      run.ID,
			GameID:     run.GameID,
			Tick:       int32(i),
			GridSize:   int32(st.GridSize),
			Move:       moveIndex(moves[i]),
			BodyX:      make([]int32, len(st.Snake)),
			BodyY:      make([]int32, len(st.Snake)),
			FoodX:      int32(st.Food.X),
			FoodY:      int32(st.Food.Y),
			Score:      int32(st.Score),
			Alive:      st.Running(),
			EndReason:  string(st.EndReason),
			FinalScore: int32(run.Score),
		}
		for j, c := range st.Snake {
			row.BodyX[j] = int32(c.X)
			row.BodyY[j] = int32(c.Y)
		}
		rows = append(rows, row)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteRunsParquet expands every run into tick rows and writes them to
// outPath. It returns the number of rows written.
func WriteRunsParquet(outPath string, runs []replay.Run) (int, error) {
	var rows []TickRow
	for _, run := range runs {
		r, err := RunRows(run)
		if err != nil {
			return 0, fmt.Errorf("export: run %s: %w", run.ID, err)
		}
		rows = append(rows, r...)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("export: create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "snake_tick_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("export: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("export: rename parquet: %w", err)
	}
	return len(rows), nil
}

// ReadTickRows loads every row of a file written by WriteRunsParquet.
func ReadTickRows(path string) ([]TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("export: open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[TickRow](pf)
	defer reader.Close()

	rows := make([]TickRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("export: read rows: %w", err)
	}
	return rows[:n], nil
}
