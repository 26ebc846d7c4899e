package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// RunRecord describes a finished run in enough detail to replay it.
type RunRecord struct {
	GameID  string
	Config  config.SnakeConfig
	RunSeed int64
	Moves   []Direction // Heading of every tick, the fatal one included
	Final   State
}

// RunSink receives every run a Game finishes.
type RunSink interface {
	RunFinished(rec RunRecord)
}

// Package-level options applied to games created afterwards (like the registry
// factories, the CLI sets these before creating a game).
var (
	activeConfig = config.DefaultSnakeConfig()
	activeSink   RunSink
)

// SetConfig validates cfg and makes it the configuration for new games.
func SetConfig(cfg config.SnakeConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	activeConfig = cfg
	return nil
}

// ActiveConfig returns the configuration new games are created with.
func ActiveConfig() config.SnakeConfig {
	return activeConfig
}

// SetRunSink sets where new games report finished runs. nil disables reporting.
func SetRunSink(sink RunSink) {
	activeSink = sink
}

// Game adapts an Engine to the registry.Game interface: it turns input
// frames into engine commands, reports finished runs and renders the board.
type Game struct {
	id      string
	title   string
	classic bool // Source-faithful food placement

	cfg        config.SnakeConfig
	engine     *Engine
	difficulty *config.DifficultyManager
	sink       RunSink

	state    State
	moves    []Direction
	paused   bool
	reported bool

	// Playback of a recorded run; input directions are ignored
	script     []Direction
	scriptSeed int64

	screenW int
	screenH int
}

// New creates a Snake game that never places food on the snake.
func New() *Game {
	return &Game{
		id:    "snake",
		title: "Snake",
	}
}

// NewClassic creates a Snake game whose food may land anywhere, snake included.
func NewClassic() *Game {
	return &Game{
		id:      "snake_classic",
		title:   "Snake (Classic)",
		classic: true,
	}
}

// NewPlayback creates a game that replays recorded moves from runSeed.
// It never reports runs.
func NewPlayback(gameID string, cfg config.SnakeConfig, runSeed int64, moves []Direction) (*Game, error) {
	engine, err := NewEngine(cfg, 0)
	if err != nil {
		return nil, err
	}
	g := &Game{
		id:         gameID,
		title:      "Replay",
		cfg:        cfg,
		engine:     engine,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		script:     moves,
		scriptSeed: runSeed,
	}
	g.state = engine.ResetSeeded(runSeed)
	return g, nil
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "snake",
		Title:       "Snake",
		Description: "Wrap-around board, food only spawns on free cells",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:          "snake_classic",
		Title:       "Snake (Classic)",
		Description: "Food may spawn anywhere, even under the snake",
	}, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

func (g *Game) variantConfig() config.SnakeConfig {
	cfg := activeConfig
	if g.classic {
		cfg.Food.Policy = config.FoodPolicyAnywhere
	}
	return cfg
}

// Reset starts a new run. The first call builds the engine from cfg.Seed;
// later calls reuse it so the high score carries over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	if g.engine == nil {
		g.cfg = g.variantConfig()
		engine, err := NewEngine(g.cfg, cfg.Seed)
		if err != nil {
			// SetConfig only accepts valid configs, so this is the hardcoded default's turn
			g.cfg = config.DefaultSnakeConfig()
			if g.classic {
				g.cfg.Food.Policy = config.FoodPolicyAnywhere
			}
			if engine, err = NewEngine(g.cfg, cfg.Seed); err != nil {
				panic(fmt.Sprintf("snake: default config rejected: %v", err))
			}
		}
		g.engine = engine
		g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
		g.sink = activeSink
		g.state = engine.State()
	} else if g.script != nil {
		g.state = g.engine.ResetSeeded(g.scriptSeed)
	} else {
		g.state = g.engine.Reset()
	}

	g.moves = g.moves[:0]
	g.paused = false
	g.reported = false
}

// Resize updates the screen size without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step processes one frame of input and advances the engine by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}

	over := g.state.Status == StatusOver

	// Handle restart
	if in.Has(core.ActionRestart) && (over || g.PlaybackDone()) {
		g.Reset(core.RuntimeConfig{ScreenW: g.screenW, ScreenH: g.screenH})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}

	for _, a := range in.Sequence() {
		switch a {
		case core.ActionFaster:
			g.engine.Faster()
		case core.ActionSlower:
			g.engine.Slower()
		}
		if over || g.paused || g.script != nil {
			continue
		}
		if d, ok := actionDirection(a); ok {
			g.engine.SetDirection(d)
		}
	}

	if over || g.paused || g.PlaybackDone() || !g.fits(g.screenW, g.screenH) {
		g.state = g.engine.State()
		return core.StepResult{State: g.State()}
	}

	if g.script != nil {
		g.engine.SetDirection(g.script[len(g.moves)])
	}

	before := g.state.Tick
	next := g.engine.Pending()
	g.state = g.engine.Step()
	moved := g.state.Tick > before
	if moved || g.state.Status == StatusOver {
		g.moves = append(g.moves, next)
	}

	if g.state.Status == StatusOver && !g.reported {
		g.report()
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

func actionDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	default:
		return Direction{}, false
	}
}

// PlaybackDone reports whether a playback game has used up its moves.
func (g *Game) PlaybackDone() bool {
	return g.script != nil && len(g.moves) >= len(g.script)
}

// report hands the finished run to the sink, once per run.
func (g *Game) report() {
	g.reported = true
	if g.sink == nil {
		return
	}
	moves := make([]Direction, len(g.moves))
	copy(moves, g.moves)
	g.sink.RunFinished(RunRecord{
		GameID:  g.id,
		Config:  g.cfg,
		RunSeed: g.state.RunSeed,
		Moves:   moves,
		Final:   g.state,
	})
}

// TickInterval returns how long the driver should wait before the next Step:
// the engine speed, shortened by difficulty progression, never below the
// configured minimum.
func (g *Game) TickInterval() time.Duration {
	if g.engine == nil {
		return time.Duration(activeConfig.Speed.Default) * time.Millisecond
	}
	floor := time.Duration(g.cfg.Speed.Min) * time.Millisecond
	return g.difficulty.Interval(g.engine.TickInterval(), floor, g.state.Score, g.state.Tick)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.state.Score,
		HighScore: g.state.HighScore,
		GameOver:  g.state.Status == StatusOver,
		Paused:    g.paused,
	}
}

// Engine exposes the underlying engine, nil before the first Reset.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Snapshot returns the engine snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return g.state.Snapshot()
}
