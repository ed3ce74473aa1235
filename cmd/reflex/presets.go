package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long: `Shows every difficulty preset and the round settings it produces
from the loaded config (see --config).`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func runPresets(_ *cobra.Command, _ []string) error {
	base, err := config.LoadReflex(flagConfig)
	if err != nil {
		return err
	}

	fmt.Println("Difficulty presets:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-7s  %-5s  %-6s  %-6s  %-7s  %s\n", "Preset", "Lives", "Time", "Points", "Options", "Description")
	fmt.Printf("  %-7s  %-5s  %-6s  %-6s  %-7s  %s\n", "------", "-----", "----", "------", "-------", "-----------")

	for _, p := range config.Presets() {
		cfg := base
		config.ApplyPreset(&cfg, p)
		r := cfg.Round
		fmt.Printf("  %-7s  %-5d  %-6s  %-6d  %-7d  %s\n",
			p, r.Lives, fmt.Sprintf("%gs", r.TimeLimit), r.PointsPerCorrect, r.Options, p.Describe())
	}

	fmt.Println()
	fmt.Println("Run 'reflex play --difficulty <preset>' to skip the picker.")
	return nil
}
