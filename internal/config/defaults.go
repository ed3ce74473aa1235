package config

import (
	_ "embed"
)

//go:embed defaults/reflex.yaml
var defaultReflexYAML []byte

// DefaultReflexConfig returns the default quiz configuration.
func DefaultReflexConfig() ReflexConfig {
	return ReflexConfig{
		Round: RoundConfig{
			Lives:            3,
			TimeLimit:        30,
			PointsPerCorrect: 10,
			Options:          4,
		},
		Keys: []string{"1", "2", "3", "4"},
	}
}
