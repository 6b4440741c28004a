package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	var cfg RunnerConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if cfg, ok := readValid(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := readValid(filepath.Join("configs", "runner.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg = RunnerConfig{}
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readValid reads and validates a config file, ignoring any failure.
func readValid(path string) (RunnerConfig, bool) {
	var cfg RunnerConfig
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
	return filepath.Join(home, ".runner", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed *= 0.85
		cfg.Spawn.BaseInterval *= 1.2
		cfg.Spawn.MinInterval *= 1.2
	case DifficultyHard:
		cfg.Physics.BaseSpeed *= 1.25
		cfg.Spawn.BaseInterval *= 0.85
		cfg.Spawn.MinInterval *= 0.85
	case DifficultyFixed:
		cfg.Physics.SpeedRamp = 0
		cfg.Spawn.IntervalRamp = 0
	}
}

// ApplyClassicVariant turns cfg into the first iteration of the game:
// ground obstacles and platforms only, no spawn-rate ramp.
func ApplyClassicVariant(cfg *RunnerConfig) {
	cfg.Spawn.IntervalRamp = 0
	cfg.Spawn.Tiers = []SpawnTier{
		{MinScore: 0, Weights: map[string]float64{KindObstacle: 1, KindPlatform: 1}},
	}
}
