package snake

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// testConfig builds a valid config with a fixed start layout.
func testConfig(size int, dir string, food config.Point, snake ...config.Point) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Size = size
	cfg.Start.Snake = snake
	cfg.Start.Direction = dir
	cfg.Start.Food = food
	cfg.Start.RandomFood = false
	return cfg
}

func pt(x, y int) config.Point {
	return config.Point{X: x, Y: y}
}

func mustEngine(t *testing.T, cfg config.SnakeConfig, seed int64) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, seed)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func cellsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEatFoodScenario(t *testing.T) {
	e := mustEngine(t, testConfig(20, "right", pt(11, 10), pt(10, 10)), 1)

	st := e.Step()

	want := []Cell{{11, 10}, {10, 10}}
	if !cellsEqual(st.Snake, want) {
		t.Errorf("snake = %v, want %v", st.Snake, want)
	}
	if st.Score != 1 {
		t.Errorf("score = %d, want 1", st.Score)
	}
	if st.HighScore != 1 {
		t.Errorf("high score = %d, want 1", st.HighScore)
	}
	if st.Food == (Cell{11, 10}) {
		t.Error("food should have moved after being eaten")
	}
	for _, c := range st.Snake {
		if c == st.Food {
			t.Errorf("food %v placed on snake", st.Food)
		}
	}
	if st.Status != StatusRunning {
		t.Errorf("status = %v, want running", st.Status)
	}
}

func TestForcedReversalCollides(t *testing.T) {
	e := mustEngine(t, testConfig(20, "right", pt(15, 15), pt(5, 5), pt(4, 5), pt(3, 5)), 1)

	// Bypass SetDirection to force the head onto (4,5)
	e.pending = Left
	st := e.Step()

	if st.Status != StatusOver {
		t.Fatalf("status = %v, want over", st.Status)
	}
	if st.EndReason != EndSelfCollision {
		t.Errorf("end reason = %q, want %q", st.EndReason, EndSelfCollision)
	}
	want := []Cell{{5, 5}, {4, 5}, {3, 5}}
	if !cellsEqual(st.Snake, want) {
		t.Errorf("snake changed on collision: %v", st.Snake)
	}
}

func TestResetAfterGameOver(t *testing.T) {
	start := []config.Point{pt(5, 5), pt(4, 5), pt(3, 5)}
	e := mustEngine(t, testConfig(20, "right", pt(6, 5), start...), 7)

	if st := e.Step(); st.Score != 1 {
		t.Fatalf("score = %d, want 1 after eating", st.Score)
	}
	e.pending = Left
	if st := e.Step(); st.Status != StatusOver {
		t.Fatalf("status = %v, want over", st.Status)
	}

	st := e.Reset()
	want := []Cell{{5, 5}, {4, 5}, {3, 5}}
	if !cellsEqual(st.Snake, want) {
		t.Errorf("snake = %v, want %v", st.Snake, want)
	}
	if st.Status != StatusRunning {
		t.Errorf("status = %v, want running", st.Status)
	}
	if st.Score != 0 {
		t.Errorf("score = %d, want 0", st.Score)
	}
	if st.HighScore != 1 {
		t.Errorf("high score = %d, want 1", st.HighScore)
	}
	if st.Direction != Right {
		t.Errorf("direction = %v, want right", st.Direction)
	}
	if st.Food != (Cell{6, 5}) {
		t.Errorf("food = %v, want configured start food", st.Food)
	}
	if st.Tick != 0 {
		t.Errorf("tick = %d, want 0", st.Tick)
	}
}

func TestReversalRejection(t *testing.T) {
	e := mustEngine(t, testConfig(20, "right", pt(0, 0), pt(10, 10), pt(9, 10)), 1)

	if e.SetDirection(Left) {
		t.Error("reversal should be rejected")
	}
	st := e.Step()
	if st.Head() != (Cell{11, 10}) {
		t.Errorf("head = %v, want (11,10)", st.Head())
	}
}

func TestReversalCheckedAgainstCommittedDirection(t *testing.T) {
	e := mustEngine(t, testConfig(20, "right", pt(0, 0), pt(10, 10), pt(9, 10)), 1)

	if !e.SetDirection(Up) {
		t.Fatal("perpendicular turn should be accepted")
	}
	// Still moving right until the next Step, so left stays a reversal
	if e.SetDirection(Left) {
		t.Error("left should be rejected before the up turn is committed")
	}
	st := e.Step()
	if st.Head() != (Cell{10, 9}) {
		t.Errorf("head = %v, want (10,9)", st.Head())
	}
	if st.Status != StatusRunning {
		t.Errorf("status = %v, want running", st.Status)
	}
}

func TestLastRequestWins(t *testing.T) {
	e := mustEngine(t, testConfig(20, "right", pt(0, 0), pt(10, 10)), 1)

	e.SetDirection(Up)
	e.SetDirection(Down)
	st := e.Step()
	if st.Head() != (Cell{10, 11}) {
		t.Errorf("head = %v, want (10,11)", st.Head())
	}
}

func TestSetDirectionRejectsNonUnit(t *testing.T) {
	e := mustEngine(t, testConfig(20, "right", pt(0, 0), pt(10, 10)), 1)

	for _, d := range []Direction{{0, 0}, {1, 1}, {2, 0}, {0, -3}} {
		if e.SetDirection(d) {
			t.Errorf("SetDirection(%v) accepted", d)
		}
	}
}

func TestWrapAround(t *testing.T) {
	tests := []struct {
		name  string
		dir   string
		start config.Point
		want  Cell
	}{
		{"right edge", "right", pt(19, 7), Cell{0, 7}},
		{"left edge", "left", pt(0, 7), Cell{19, 7}},
		{"bottom edge", "down", pt(7, 19), Cell{7, 0}},
		{"top edge", "up", pt(7, 0), Cell{7, 19}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustEngine(t, testConfig(20, tt.dir, pt(10, 10), tt.start), 1)
			st := e.Step()
			if st.Head() != tt.want {
				t.Errorf("head = %v, want %v", st.Head(), tt.want)
			}
			if st.Status != StatusRunning {
				t.Errorf("status = %v, wrapping must not end the game", st.Status)
			}
		})
	}
}

func TestTerminalIdempotence(t *testing.T) {
	e := mustEngine(t, testConfig(20, "right", pt(15, 15), pt(5, 5), pt(4, 5), pt(3, 5)), 1)
	e.pending = Left
	over := e.Step()

	for range 10 {
		e.SetDirection(Up)
		st := e.Step()
		if !cellsEqual(st.Snake, over.Snake) || st.Food != over.Food || st.Score != over.Score {
			t.Fatalf("state changed after game over: %+v", st)
		}
		if st.Tick != over.Tick {
			t.Fatalf("tick advanced after game over: %d", st.Tick)
		}
	}
}

func TestTailCollisionRule(t *testing.T) {
	// A square loop heading up; turning right puts the head on the tail
	loop := []config.Point{pt(1, 1), pt(1, 2), pt(2, 2), pt(2, 1)}

	tests := []struct {
		name       string
		foodOnTail bool
		wantStatus Status
		wantSnake  []Cell
	}{
		{
			name:       "vacated tail is free",
			wantStatus: StatusRunning,
			wantSnake:  []Cell{{2, 1}, {1, 1}, {1, 2}, {2, 2}},
		},
		{
			name:       "tail stays when eating",
			foodOnTail: true,
			wantStatus: StatusOver,
			wantSnake:  []Cell{{1, 1}, {1, 2}, {2, 2}, {2, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(5, "up", pt(4, 4), loop...)
			cfg.Food.Policy = config.FoodPolicyAnywhere
			e := mustEngine(t, cfg, 1)
			if tt.foodOnTail {
				e.food = Cell{X: 2, Y: 1}
			}

			if !e.SetDirection(Right) {
				t.Fatal("right turn from up should be accepted")
			}
			st := e.Step()

			if st.Status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", st.Status, tt.wantStatus)
			}
			if !cellsEqual(st.Snake, tt.wantSnake) {
				t.Errorf("snake = %v, want %v", st.Snake, tt.wantSnake)
			}
			if tt.wantStatus == StatusOver {
				if st.EndReason != EndSelfCollision || st.Score != 0 {
					t.Errorf("end=%q score=%d, want self collision and no score", st.EndReason, st.Score)
				}
			}
		})
	}
}

func TestBoardFull(t *testing.T) {
	e := mustEngine(t, testConfig(2, "right", pt(1, 0), pt(0, 0)), 3)

	// Circle the 2x2 board; every turn is perpendicular to the last
	cycle := []Direction{Right, Down, Left, Up}
	var st State
	for i := 0; i < 50 && e.Status() == StatusRunning; i++ {
		e.SetDirection(cycle[i%len(cycle)])
		st = e.Step()
	}

	if st.Status != StatusOver {
		t.Fatalf("status = %v, want over", st.Status)
	}
	if st.EndReason != EndBoardFull {
		t.Errorf("end reason = %q, want %q", st.EndReason, EndBoardFull)
	}
	if st.Len() != 4 || st.Score != 3 {
		t.Errorf("len=%d score=%d, want 4 and 3", st.Len(), st.Score)
	}
}

func TestFoodPolicyWhenBoardFills(t *testing.T) {
	// Eight cells of a 3x3 board; eating the ninth fills it
	snake := []config.Point{pt(1, 2), pt(0, 2), pt(0, 1), pt(1, 1), pt(2, 1), pt(2, 0), pt(1, 0), pt(0, 0)}

	tests := []struct {
		policy     string
		wantStatus Status
		wantReason EndReason
	}{
		{config.FoodPolicyFree, StatusOver, EndBoardFull},
		{config.FoodPolicyAnywhere, StatusRunning, EndNone},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			cfg := testConfig(3, "right", pt(2, 2), snake...)
			cfg.Food.Policy = tt.policy
			e := mustEngine(t, cfg, 1)

			st := e.Step()
			if st.Score != 1 || st.Len() != 9 {
				t.Fatalf("score=%d len=%d, want 1 and 9", st.Score, st.Len())
			}
			if st.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", st.Status, tt.wantStatus)
			}
			if st.EndReason != tt.wantReason {
				t.Errorf("end reason = %q, want %q", st.EndReason, tt.wantReason)
			}
			if tt.policy == config.FoodPolicyAnywhere && !inGrid(st.Food.X, st.Food.Y, 3) {
				t.Errorf("food %v out of bounds", st.Food)
			}
		})
	}
}

// TestRandomPlayInvariants drives the engine with random turns and checks
// the structural invariants after every tick.
func TestRandomPlayInvariants(t *testing.T) {
	for _, policy := range []string{config.FoodPolicyFree, config.FoodPolicyAnywhere} {
		t.Run(policy, func(t *testing.T) {
			cfg := testConfig(8, "right", pt(6, 4), pt(4, 4), pt(3, 4), pt(2, 4))
			cfg.Food.Policy = policy
			e := mustEngine(t, cfg, 99)
			rng := rand.New(rand.NewSource(42))
			dirs := []Direction{Up, Down, Left, Right}

			prev := e.State()
			high := prev.HighScore
			for i := range 5000 {
				if rng.Intn(3) == 0 {
					e.SetDirection(dirs[rng.Intn(len(dirs))])
				}

				var st State
				if prev.Status == StatusOver {
					st = e.Reset()
					if st.Score != 0 || st.Status != StatusRunning {
						t.Fatalf("tick %d: reset gave %+v", i, st)
					}
				} else {
					st = e.Step()
					checkTransition(t, prev, st)
				}
				checkState(t, st)

				if st.HighScore < high {
					t.Fatalf("tick %d: high score decreased %d -> %d", i, high, st.HighScore)
				}
				high = st.HighScore
				prev = st
			}
		})
	}
}

func checkState(t *testing.T, st State) {
	t.Helper()
	n := st.GridSize
	seen := make(map[Cell]bool, len(st.Snake))
	for _, c := range st.Snake {
		if !inGrid(c.X, c.Y, n) {
			t.Fatalf("cell %v out of bounds", c)
		}
		if st.Status == StatusRunning && seen[c] {
			t.Fatalf("snake repeats cell %v: %v", c, st.Snake)
		}
		seen[c] = true
	}
	if !inGrid(st.Food.X, st.Food.Y, n) {
		t.Fatalf("food %v out of bounds", st.Food)
	}
	if st.HighScore < st.Score {
		t.Fatalf("high score %d below score %d", st.HighScore, st.Score)
	}
}

func checkTransition(t *testing.T, prev, st State) {
	t.Helper()
	if st.Status == StatusOver && st.EndReason == EndSelfCollision {
		if st.Len() != prev.Len() || st.Score != prev.Score {
			t.Fatalf("collision tick changed the snake: %+v -> %+v", prev, st)
		}
		return
	}
	grew := st.Len() - prev.Len()
	scored := st.Score - prev.Score
	if grew != scored || (grew != 0 && grew != 1) {
		t.Fatalf("growth law broken: length %+d, score %+d", grew, scored)
	}
	if st.LastMove.Opposite() == prev.Direction && prev.Tick > 0 {
		t.Fatalf("moved %v straight back from %v", st.LastMove, prev.Direction)
	}
}

func TestDeterministicEngines(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Start.RandomFood = true

	play := func() []Snapshot {
		e := mustEngine(t, cfg, 12345)
		script := []Direction{Down, Left, Up, Right}
		var snaps []Snapshot
		for i := range 400 {
			if i%7 == 0 {
				e.SetDirection(script[(i/7)%len(script)])
			}
			st := e.Step()
			if st.Status == StatusOver {
				st = e.Reset()
			}
			snaps = append(snaps, st.Snapshot())
		}
		return snaps
	}

	a, b := play(), play()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d: snapshots diverge\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestResetSeededReplaysFood(t *testing.T) {
	e := mustEngine(t, testConfig(10, "right", pt(5, 5), pt(4, 5)), 5)
	seed := e.State().RunSeed

	st := e.Step()
	firstFood := st.Food

	e.Reset()
	st = e.ResetSeeded(seed)
	if st.RunSeed != seed {
		t.Fatalf("run seed = %d, want %d", st.RunSeed, seed)
	}
	st = e.Step()
	if st.Food != firstFood {
		t.Errorf("replayed food = %v, want %v", st.Food, firstFood)
	}
}

func TestRunSeedsDifferPerReset(t *testing.T) {
	e := mustEngine(t, config.DefaultSnakeConfig(), 5)
	seen := map[int64]bool{e.State().RunSeed: true}
	for range 5 {
		s := e.Reset().RunSeed
		if seen[s] {
			t.Fatalf("run seed %d repeated", s)
		}
		seen[s] = true
	}
}

func TestSpeedControl(t *testing.T) {
	e := mustEngine(t, config.DefaultSnakeConfig(), 1)

	if got := e.Speed(); got != 100 {
		t.Fatalf("default speed = %d, want 100", got)
	}
	if got := e.SetSpeed(10); got != 50 {
		t.Errorf("SetSpeed(10) = %d, want 50", got)
	}
	if got := e.SetSpeed(1000); got != 200 {
		t.Errorf("SetSpeed(1000) = %d, want 200", got)
	}
	if got := e.Slower(); got != 200 {
		t.Errorf("Slower at max = %d, want 200", got)
	}
	if got := e.Faster(); got != 190 {
		t.Errorf("Faster = %d, want 190", got)
	}
	for range 50 {
		e.Faster()
	}
	if got := e.Speed(); got != 50 {
		t.Errorf("speed after many Faster = %d, want 50", got)
	}
	if got := e.TickInterval(); got != 50*time.Millisecond {
		t.Errorf("TickInterval = %v, want 50ms", got)
	}

	if st := e.Reset(); st.Speed != 50 {
		t.Errorf("speed after reset = %d, want 50", st.Speed)
	}
}

func TestSpeedDoesNotAffectStep(t *testing.T) {
	fast := mustEngine(t, config.DefaultSnakeConfig(), 9)
	slow := mustEngine(t, config.DefaultSnakeConfig(), 9)
	fast.SetSpeed(50)
	slow.SetSpeed(200)

	for range 30 {
		a, b := fast.Step(), slow.Step()
		a.Speed, b.Speed = 0, 0
		if a.Snapshot() != b.Snapshot() {
			t.Fatalf("speed changed the simulation: %+v vs %+v", a.Snapshot(), b.Snapshot())
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.SnakeConfig)
	}{
		{"tiny grid", func(c *config.SnakeConfig) { c.Grid.Size = 1 }},
		{"empty snake", func(c *config.SnakeConfig) { c.Start.Snake = nil }},
		{"snake out of grid", func(c *config.SnakeConfig) { c.Start.Snake = []config.Point{pt(20, 0)} }},
		{"negative cell", func(c *config.SnakeConfig) { c.Start.Snake = []config.Point{pt(-1, 0)} }},
		{"repeated cell", func(c *config.SnakeConfig) { c.Start.Snake = []config.Point{pt(1, 1), pt(1, 1)} }},
		{"bad direction", func(c *config.SnakeConfig) { c.Start.Direction = "sideways" }},
		{"food on snake", func(c *config.SnakeConfig) { c.Start.Food = pt(10, 10) }},
		{"food out of grid", func(c *config.SnakeConfig) { c.Start.Food = pt(0, 25) }},
		{"bad policy", func(c *config.SnakeConfig) { c.Food.Policy = "nowhere" }},
		{"zero min speed", func(c *config.SnakeConfig) { c.Speed.Min = 0 }},
		{"default above max", func(c *config.SnakeConfig) { c.Speed.Default = 500 }},
		{"negative step", func(c *config.SnakeConfig) { c.Speed.Step = -1 }},
		{"snake fills grid", func(c *config.SnakeConfig) {
			c.Grid.Size = 2
			c.Start.Snake = []config.Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}
			c.Start.RandomFood = true
		}},
	}

	if err := Validate(config.DefaultSnakeConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultSnakeConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate = %v, want ErrInvalidConfig", err)
			}
			if _, err := NewEngine(cfg, 1); err == nil {
				t.Error("NewEngine accepted an invalid config")
			}
		})
	}
}

func TestRandomFoodStartSkipsFixedFood(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Start.RandomFood = true
	cfg.Start.Food = pt(99, 99) // Ignored

	e := mustEngine(t, cfg, 4)
	st := e.State()
	if !inGrid(st.Food.X, st.Food.Y, st.GridSize) || st.Food == st.Head() {
		t.Errorf("random start food %v invalid", st.Food)
	}
}

func TestEngineCopiesStartLayout(t *testing.T) {
	cfg := testConfig(20, "right", pt(15, 15), pt(5, 5), pt(4, 5))
	e := mustEngine(t, cfg, 1)
	cfg.Start.Snake[0] = pt(0, 0)

	e.Step()
	st := e.Reset()
	if st.Head() != (Cell{5, 5}) {
		t.Errorf("reset head = %v, caller mutation leaked into engine", st.Head())
	}
}

func TestStateIsACopy(t *testing.T) {
	e := mustEngine(t, config.DefaultSnakeConfig(), 1)
	st := e.State()
	st.Snake[0] = Cell{0, 0}
	if e.Snake()[0] != (Cell{10, 10}) {
		t.Error("mutating State.Snake changed the engine")
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := mustEngine(t, config.DefaultSnakeConfig(), 1)
	dirs := []Direction{Up, Right, Down, Left}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := range 500 {
			e.SetDirection(dirs[i%len(dirs)])
		}
	}()
	go func() {
		defer wg.Done()
		for range 500 {
			_ = e.State()
			_ = e.Score()
			e.Faster()
			e.Slower()
		}
	}()
	go func() {
		defer wg.Done()
		for range 500 {
			if e.Step().Status == StatusOver {
				e.Reset()
			}
		}
	}()
	wg.Wait()

	checkState(t, e.State())
}
