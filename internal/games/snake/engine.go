package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("snake: invalid config")

// Engine owns the state of one snake game on a toroidal square grid.
//
// The engine never reads a clock: a driver calls Step once per tick and
// consults TickInterval to decide when the next tick is due. All methods
// are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	cfg      config.SnakeConfig
	size     int
	anywhere bool // Food may respawn on the snake
	start    []Cell
	startDir Direction

	seeds   *rand.Rand // Draws one run seed per reset
	rng     *rand.Rand // Food placement for the current run
	runSeed int64

	snake     []Cell // Head at index 0
	direction Direction
	pending   Direction // Applied by the next Step
	lastMove  Direction
	food      Cell
	score     int
	highScore int // Survives Reset
	status    Status
	endReason EndReason
	speed     int // Survives Reset
	tick      uint64
}

// NewEngine validates cfg and returns an engine ready for its first Step.
// The seed drives every run the engine plays; equal seeds replay equal games.
func NewEngine(cfg config.SnakeConfig, seed int64) (*Engine, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	cfg.Start.Snake = append([]config.Point(nil), cfg.Start.Snake...)
	startDir, _ := ParseDirection(cfg.Start.Direction)
	start := make([]Cell, len(cfg.Start.Snake))
	for i, p := range cfg.Start.Snake {
		start[i] = Cell{X: p.X, Y: p.Y}
	}

	e := &Engine{
		cfg:      cfg,
		size:     cfg.Grid.Size,
		anywhere: cfg.Food.Policy == config.FoodPolicyAnywhere,
		start:    start,
		startDir: startDir,
		seeds:    rand.New(rand.NewSource(seed)),
		speed:    cfg.Speed.Default,
	}
	e.resetLocked(e.seeds.Int63())
	return e, nil
}

// Validate checks that cfg describes a playable game.
func Validate(cfg config.SnakeConfig) error {
	n := cfg.Grid.Size
	if n < 2 {
		return fmt.Errorf("%w: grid size %d is below 2", ErrInvalidConfig, n)
	}

	if len(cfg.Start.Snake) == 0 {
		return fmt.Errorf("%w: start snake is empty", ErrInvalidConfig)
	}
	if len(cfg.Start.Snake) >= n*n {
		return fmt.Errorf("%w: start snake leaves no room for food", ErrInvalidConfig)
	}
	seen := make(map[config.Point]bool, len(cfg.Start.Snake))
	for _, p := range cfg.Start.Snake {
		if !inGrid(p.X, p.Y, n) {
			return fmt.Errorf("%w: start snake cell (%d,%d) is outside the %dx%d grid", ErrInvalidConfig, p.X, p.Y, n, n)
		}
		if seen[p] {
			return fmt.Errorf("%w: start snake repeats cell (%d,%d)", ErrInvalidConfig, p.X, p.Y)
		}
		seen[p] = true
	}

	if _, ok := ParseDirection(cfg.Start.Direction); !ok {
		return fmt.Errorf("%w: unknown start direction %q", ErrInvalidConfig, cfg.Start.Direction)
	}

	if !cfg.Start.RandomFood {
		f := cfg.Start.Food
		if !inGrid(f.X, f.Y, n) {
			return fmt.Errorf("%w: start food (%d,%d) is outside the grid", ErrInvalidConfig, f.X, f.Y)
		}
		if seen[f] {
			return fmt.Errorf("%w: start food (%d,%d) is on the snake", ErrInvalidConfig, f.X, f.Y)
		}
	}

	switch cfg.Food.Policy {
	case config.FoodPolicyFree, config.FoodPolicyAnywhere:
	default:
		return fmt.Errorf("%w: unknown food policy %q", ErrInvalidConfig, cfg.Food.Policy)
	}

	s := cfg.Speed
	if s.Min <= 0 || s.Min > s.Default || s.Default > s.Max {
		return fmt.Errorf("%w: speed bounds must satisfy 0 < min <= default <= max, got %d/%d/%d",
			ErrInvalidConfig, s.Min, s.Default, s.Max)
	}
	if s.Step < 0 {
		return fmt.Errorf("%w: negative speed step %d", ErrInvalidConfig, s.Step)
	}
	return nil
}

func inGrid(x, y, n int) bool {
	return x >= 0 && x < n && y >= 0 && y < n
}

// SetDirection requests the direction used by the next Step.
// A request opposite to the current direction of travel is ignored, as is
// anything that is not a unit step. Between two ticks the last accepted
// request wins. The result reports whether the request was accepted.
func (e *Engine) SetDirection(d Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !d.IsUnit() || d == e.direction.Opposite() {
		return false
	}
	e.pending = d
	return true
}

// Pending returns the direction the next Step will move in.
func (e *Engine) Pending() Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Step advances the game by one tick and returns the resulting state.
// Once the game is over Step changes nothing until Reset.
func (e *Engine) Step() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusOver {
		return e.stateLocked()
	}

	dir := e.pending
	head := e.snake[0].Add(dir)
	head = Cell{X: core.Wrap(head.X, e.size), Y: core.Wrap(head.Y, e.size)}
	eating := head == e.food

	if e.collides(head, eating) {
		e.status = StatusOver
		e.endReason = EndSelfCollision
		return e.stateLocked()
	}

	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = head

	boardFull := false
	if eating {
		e.score++
		e.highScore = max(e.highScore, e.score)
		boardFull = !e.placeFood()
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	e.direction = dir
	e.lastMove = dir
	e.tick++

	if boardFull {
		e.status = StatusOver
		e.endReason = EndBoardFull
	}
	return e.stateLocked()
}

// collides checks head against the body as it stands before the move.
// The tail is skipped when it is about to be vacated, i.e. when not eating.
func (e *Engine) collides(head Cell, eating bool) bool {
	n := len(e.snake)
	if !eating {
		n--
	}
	for i := range n {
		if e.snake[i] == head {
			return true
		}
	}
	return false
}

// placeFood picks a new food cell according to the food policy.
// It returns false when the policy finds no cell, which only happens when
// the snake covers the whole grid.
func (e *Engine) placeFood() bool {
	if e.anywhere {
		e.food = Cell{X: e.rng.Intn(e.size), Y: e.rng.Intn(e.size)}
		return true
	}

	occupied := make(map[Cell]bool, len(e.snake))
	for _, c := range e.snake {
		occupied[c] = true
	}
	free := make([]Cell, 0, e.size*e.size-len(occupied))
	for y := range e.size {
		for x := range e.size {
			c := Cell{X: x, Y: y}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return false
	}
	e.food = free[e.rng.Intn(len(free))]
	return true
}

// Reset starts a new run from the configured layout with a fresh run seed.
// Speed and high score are kept.
func (e *Engine) Reset() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetLocked(e.seeds.Int63())
	return e.stateLocked()
}

// ResetSeeded is Reset with an explicit run seed, used to replay a recorded run.
func (e *Engine) ResetSeeded(runSeed int64) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetLocked(runSeed)
	return e.stateLocked()
}

func (e *Engine) resetLocked(runSeed int64) {
	e.runSeed = runSeed
	e.rng = rand.New(rand.NewSource(runSeed))

	e.snake = append(e.snake[:0], e.start...)
	e.direction = e.startDir
	e.pending = e.startDir
	e.lastMove = Direction{}
	e.score = 0
	e.status = StatusRunning
	e.endReason = EndNone
	e.tick = 0

	if e.cfg.Start.RandomFood {
		// Validate guarantees a free cell exists for the start layout
		e.placeFood()
	} else {
		e.food = Cell{X: e.cfg.Start.Food.X, Y: e.cfg.Start.Food.Y}
	}
}

// SetSpeed sets the tick interval in milliseconds, clamped to the configured
// bounds, and returns the value in effect. Step never reads it.
func (e *Engine) SetSpeed(ms int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.speed = core.Clamp(ms, e.cfg.Speed.Min, e.cfg.Speed.Max)
	return e.speed
}

// Faster shortens the tick interval by one speed step.
func (e *Engine) Faster() int {
	return e.nudgeSpeed(-e.cfg.Speed.Step)
}

// Slower lengthens the tick interval by one speed step.
func (e *Engine) Slower() int {
	return e.nudgeSpeed(e.cfg.Speed.Step)
}

func (e *Engine) nudgeSpeed(delta int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.speed = core.Clamp(e.speed+delta, e.cfg.Speed.Min, e.cfg.Speed.Max)
	return e.speed
}

// Speed returns the tick interval in milliseconds.
func (e *Engine) Speed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// TickInterval returns the speed setting as a duration.
func (e *Engine) TickInterval() time.Duration {
	return time.Duration(e.Speed()) * time.Millisecond
}

// State returns a copy of the observable state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	snake := make([]Cell, len(e.snake))
	copy(snake, e.snake)
	return State{
		GridSize:  e.size,
		Snake:     snake,
		Food:      e.food,
		Direction: e.direction,
		LastMove:  e.lastMove,
		Score:     e.score,
		HighScore: e.highScore,
		Status:    e.status,
		EndReason: e.endReason,
		Speed:     e.speed,
		Tick:      e.tick,
		RunSeed:   e.runSeed,
	}
}

// Snake returns a copy of the snake cells, head first.
func (e *Engine) Snake() []Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Cell, len(e.snake))
	copy(out, e.snake)
	return out
}

// Food returns the food cell.
func (e *Engine) Food() Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.food
}

// Score returns the score of the current run.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// HighScore returns the best score since the engine was created.
func (e *Engine) HighScore() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.highScore
}

// Status returns whether the run is in progress or over.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// GridSize returns the side length of the grid.
func (e *Engine) GridSize() int {
	return e.size
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() config.SnakeConfig {
	return e.cfg
}
