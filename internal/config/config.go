// Package config provides YAML-based game configuration loading and
// difficulty management for the snake platform.
package config

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid"`
	Start      SnakeStart       `yaml:"start"`
	Food       SnakeFood        `yaml:"food"`
	Speed      SnakeSpeed       `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGrid defines the square playfield.
type SnakeGrid struct {
	Size int `yaml:"size"` // Side length in cells
}

// Point is a grid coordinate as written in YAML.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SnakeStart defines the layout every run starts from.
type SnakeStart struct {
	Snake      []Point `yaml:"snake"`       // Head first
	Direction  string  `yaml:"direction"`   // "up", "down", "left" or "right"
	Food       Point   `yaml:"food"`        // Used unless RandomFood is set
	RandomFood bool    `yaml:"random_food"` // Place the first food like a respawn
}

// Food placement policies.
const (
	FoodPolicyFree     = "free"     // Only cells not covered by the snake
	FoodPolicyAnywhere = "anywhere" // Any cell, snake included
)

// SnakeFood defines how food respawns after being eaten.
type SnakeFood struct {
	Policy string `yaml:"policy"`
}

// SnakeSpeed defines the tick interval bounds in milliseconds.
type SnakeSpeed struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Default int `yaml:"default"`
	Step    int `yaml:"step"` // Amount a single faster/slower press moves the interval
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
