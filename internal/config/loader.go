package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAsteroids loads the asteroids configuration.
// Search order: customPath -> ~/.arcade/configs/asteroids.yaml -> ./configs/asteroids.yaml -> embedded default
//
// Files are decoded over DefaultAsteroidsConfig, so a file only needs the
// keys it changes. A config from an explicit path must also pass Validate.
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	cfg := DefaultAsteroidsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("asteroids.yaml"); userCfgPath != "" {
		if c, ok := readValid(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := readValid(filepath.Join("configs", "asteroids.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	cfg = DefaultAsteroidsConfig()
	if err := yaml.Unmarshal(defaultAsteroidsYAML, &cfg); err != nil {
		return DefaultAsteroidsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readValid reads an optional config file. Missing, malformed or invalid
// files are skipped so the next location in the search order is tried.
func readValid(path string) (AsteroidsConfig, bool) {
	cfg := DefaultAsteroidsConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyAsteroidsPreset modifies the config based on a difficulty preset.
func ApplyAsteroidsPreset(cfg *AsteroidsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the opening wave based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Asteroids.InitialCount = max(cfg.Asteroids.InitialCount-4, 1)
		cfg.Asteroids.SpawnSpeed *= 0.75
	case DifficultyHard:
		cfg.Asteroids.InitialCount += 4
		cfg.Asteroids.SpawnSpeed *= 1.5
	}

	// Faster waves need wider grid cells
	cfg.World.CellSize = max(cfg.World.CellSize, cfg.MinCellSize())
}
