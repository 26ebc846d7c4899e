// Package replay turns finished snake runs into self-contained records and
// re-simulates them. A record holds the run seed, the exact config and the
// heading of every tick, which is all the engine needs to reproduce the run.
package replay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrReplayMismatch is returned when re-simulating a run does not reproduce
// the recorded outcome.
var ErrReplayMismatch = errors.New("replay: mismatch")

// Run is a recorded game, ready to be stored and replayed.
type Run struct {
	ID         string
	GameID     string
	RunSeed    int64
	Config     string // YAML, as produced by config.MarshalSnake
	Moves      string // One of U, D, L, R per tick
	Score      int
	HighScore  int
	Length     int
	Ticks      uint64
	EndReason  string
	FinishedAt time.Time
}

// FromRecord builds a Run from a finished game record.
func FromRecord(rec snake.RunRecord, finishedAt time.Time) (Run, error) {
	cfgYAML, err := config.MarshalSnake(rec.Config)
	if err != nil {
		return Run{}, fmt.Errorf("replay: cannot encode config: %w", err)
	}

	return Run{
		ID:         uuid.NewString(),
		GameID:     rec.GameID,
		RunSeed:    rec.RunSeed,
		Config:     string(cfgYAML),
		Moves:      EncodeMoves(rec.Moves),
		Score:      rec.Final.Score,
		HighScore:  rec.Final.HighScore,
		Length:     rec.Final.Len(),
		Ticks:      rec.Final.Tick,
		EndReason:  string(rec.Final.EndReason),
		FinishedAt: finishedAt.UTC(),
	}, nil
}

// EncodeMoves writes one letter per move.
func EncodeMoves(moves []snake.Direction) string {
	var sb strings.Builder
	sb.Grow(len(moves))
	for _, m := range moves {
		sb.WriteByte(m.Letter())
	}
	return sb.String()
}

// DecodeMoves parses a move string written by EncodeMoves.
func DecodeMoves(s string) ([]snake.Direction, error) {
	moves := make([]snake.Direction, len(s))
	for i := 0; i < len(s); i++ {
		d, ok := snake.DirectionFromLetter(s[i])
		if !ok {
			return nil, fmt.Errorf("replay: invalid move %q at %d", s[i], i)
		}
		moves[i] = d
	}
	return moves, nil
}

// SnakeConfig decodes the config the run was played with.
func (r Run) SnakeConfig() (config.SnakeConfig, error) {
	cfg, err := config.ParseSnake([]byte(r.Config))
	if err != nil {
		return config.SnakeConfig{}, fmt.Errorf("replay: run %s: %w", r.ID, err)
	}
	return cfg, nil
}

// Simulate replays the run on a fresh engine. visit, if non-nil, sees the
// state after every tick. The returned state is the one after the last move.
func Simulate(r Run, visit func(i int, st snake.State)) (snake.State, error) {
	cfg, err := r.SnakeConfig()
	if err != nil {
		return snake.State{}, err
	}
	moves, err := DecodeMoves(r.Moves)
	if err != nil {
		return snake.State{}, err
	}

	engine, err := snake.NewEngine(cfg, 0)
	if err != nil {
		return snake.State{}, fmt.Errorf("replay: run %s: %w", r.ID, err)
	}
	st := engine.ResetSeeded(r.RunSeed)

	for i, m := range moves {
		if st.Status == snake.StatusOver {
			return st, fmt.Errorf("%w: run %s ended at move %d of %d", ErrReplayMismatch, r.ID, i, len(moves))
		}
		if !engine.SetDirection(m) {
			return st, fmt.Errorf("%w: run %s move %d (%s) rejected", ErrReplayMismatch, r.ID, i, m)
		}
		st = engine.Step()
		if visit != nil {
			visit(i, st)
		}
	}
	return st, nil
}

// Verify replays the run and checks that it ends exactly as recorded.
func Verify(r Run) error {
	st, err := Simulate(r, nil)
	if err != nil {
		return err
	}

	switch {
	case st.Score != r.Score:
		return fmt.Errorf("%w: run %s score %d, recorded %d", ErrReplayMismatch, r.ID, st.Score, r.Score)
	case st.Len() != r.Length:
		return fmt.Errorf("%w: run %s length %d, recorded %d", ErrReplayMismatch, r.ID, st.Len(), r.Length)
	case st.Tick != r.Ticks:
		return fmt.Errorf("%w: run %s ticks %d, recorded %d", ErrReplayMismatch, r.ID, st.Tick, r.Ticks)
	case string(st.EndReason) != r.EndReason:
		return fmt.Errorf("%w: run %s ended with %s, recorded %s", ErrReplayMismatch, r.ID, st.EndReason, r.EndReason)
	}
	return nil
}
