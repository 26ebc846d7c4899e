package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the snake configuration",
	Long: `Print the configuration a game would start with, after --config and
--difficulty are applied. Use --default for the built-in file, a good
starting point for ~/.snake/configs/snake.yaml.

Examples:
  snake config --difficulty hard
  snake config --default > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default configuration")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigDefault {
		_, err := cmd.OutOrStdout().Write(config.GetDefaultYAML("snake"))
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := snake.Validate(cfg); err != nil {
		return err
	}
	data, err := config.MarshalSnake(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
