package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Size: 20,
		},
		Start: SnakeStart{
			Snake:     []Point{{X: 10, Y: 10}},
			Direction: "right",
			Food:      Point{X: 15, Y: 15},
		},
		Food: SnakeFood{
			Policy: FoodPolicyFree,
		},
		Speed: SnakeSpeed{
			Min:     50,
			Max:     200,
			Default: 100,
			Step:    10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake", "snake_classic":
		return defaultSnakeYAML
	default:
		return nil
	}
}
