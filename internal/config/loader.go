package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadReflex loads the quiz configuration.
// Search order: customPath -> ~/.reflex/configs/reflex.yaml -> ./configs/reflex.yaml -> embedded default
func LoadReflex(customPath string) (ReflexConfig, error) {
	// Start from defaults so partial files only override what they set
	cfg := DefaultReflexConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("reflex.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath, cfg); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "reflex.yaml"), cfg); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultReflexYAML, &cfg); err != nil {
		return DefaultReflexConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file over base.
// Missing, unparsable or invalid files are skipped.
func tryLoad(path string, base ReflexConfig) (ReflexConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	cfg.Keys = append([]string(nil), base.Keys...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if cfg.Validate() != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".reflex", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ReflexConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Round.Lives = 5
		cfg.Round.TimeLimit = 45
	case DifficultyNormal:
		cfg.Round.Lives = 3
		cfg.Round.TimeLimit = 30
	case DifficultyHard:
		cfg.Round.Lives = 2
		cfg.Round.TimeLimit = 15
	}
}
