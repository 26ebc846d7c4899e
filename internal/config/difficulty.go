package config

import "time"

// Progression types.
const (
	ProgressScore = "score" // Level follows food eaten
	ProgressTime  = "time"  // Level follows ticks survived
	ProgressNone  = "none"
)

// DifficultyManager turns the progress of a run into a speed-up of the
// tick interval.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg}
	d.SetInitialLevel(cfg.InitialLevel)
	return d
}

// SetInitialLevel overrides the initial difficulty level, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = min(max(level, 0), 1)
}

// IsEnabled reports whether the level moves during a run.
func (d *DifficultyManager) IsEnabled() bool {
	if !d.cfg.Enabled {
		return false
	}
	return d.cfg.Progression.Type == ProgressScore || d.cfg.Progression.Type == ProgressTime
}

// progress returns how far the run is towards max_at, in [0, 1].
func (d *DifficultyManager) progress(score int, ticks uint64) float64 {
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))

	var done float64
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = float64(score)
	case ProgressTime:
		done = float64(ticks)
	}
	return min(done/maxAt, 1)
}

// Level returns the difficulty level (0.0 to 1.0), interpolated from the
// initial level to 1 as the run progresses.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	return d.initialLevel + d.progress(score, ticks)*(1-d.initialLevel)
}

// Speed returns the speed multiplier for the current level. With difficulty
// disabled it is always 1.
func (d *DifficultyManager) Speed(score int, ticks uint64) float64 {
	if !d.cfg.Enabled {
		return 1
	}
	return 1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
}

// Interval shortens base by the speed multiplier, never going below floor.
func (d *DifficultyManager) Interval(base, floor time.Duration, score int, ticks uint64) time.Duration {
	return max(time.Duration(float64(base)/d.Speed(score, ticks)), floor)
}
