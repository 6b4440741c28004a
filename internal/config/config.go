// Package config provides YAML-based game configuration loading and
// difficulty pacing for the runner.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid runner config")

// RunnerConfig contains all configuration for the runner.
type RunnerConfig struct {
	World     WorldConfig             `yaml:"world"`
	Physics   RunnerPhysics           `yaml:"physics"`
	Player    RunnerPlayer            `yaml:"player"`
	Obstacles RunnerObstacles         `yaml:"obstacles"`
	Flyers    RunnerFlyers            `yaml:"flyers"`
	Platforms RunnerPlatforms         `yaml:"platforms"`
	Coins     RunnerCoins             `yaml:"coins"`
	Spawn     SpawnConfig             `yaml:"spawn"`
	Anchors   map[string]AnchorConfig `yaml:"anchors"`
}

// WorldConfig defines the fixed drawing surface in world pixels.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GroundY     float64 `yaml:"ground_y"`
	GroundStrip float64 `yaml:"ground_strip"` // Ground art starts this far above GroundY
}

// RunnerPhysics defines per-tick physics parameters.
type RunnerPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	JumpGrace   float64 `yaml:"jump_grace"` // Jump allowed this close above the ground
	BaseSpeed   float64 `yaml:"base_speed"`
	SpeedRamp   float64 `yaml:"speed_ramp"` // Score per extra unit of speed; <= 0 disables
}

// RunnerPlayer defines the player's fixed geometry.
type RunnerPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RunnerObstacles defines the size choices for ground obstacles.
type RunnerObstacles struct {
	Widths  []float64 `yaml:"widths"`
	Heights []float64 `yaml:"heights"`
}

// RunnerFlyers defines airborne enemies.
type RunnerFlyers struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	MinAltitude   float64 `yaml:"min_altitude"` // Smallest top-edge y
	MaxAltitude   float64 `yaml:"max_altitude"` // Largest top-edge y
	VerticalSpeed float64 `yaml:"vertical_speed"`
}

// RunnerPlatforms defines one-way platforms.
type RunnerPlatforms struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Lift       float64 `yaml:"lift"`        // Minimum distance of the top above ground
	LiftJitter float64 `yaml:"lift_jitter"` // Random extra lift
}

// RunnerCoins defines coins spawned above platforms.
type RunnerCoins struct {
	Size   float64 `yaml:"size"`
	Lift   float64 `yaml:"lift"` // Distance of the coin's top above the platform top
	Value  int     `yaml:"value"`
	Chance float64 `yaml:"chance"`
}

// SpawnConfig defines the spawn timer and the kind distribution.
type SpawnConfig struct {
	BaseInterval float64     `yaml:"base_interval"`
	Jitter       float64     `yaml:"jitter"`
	MinInterval  float64     `yaml:"min_interval"`
	IntervalRamp float64     `yaml:"interval_ramp"` // Score per tick of interval reduction; <= 0 disables
	Tiers        []SpawnTier `yaml:"tiers"`
}

// SpawnTier applies from MinScore until a higher tier takes over.
type SpawnTier struct {
	MinScore int                `yaml:"min_score"`
	Weights  map[string]float64 `yaml:"weights"`
}

// AnchorConfig aligns sprite art with logical bounds for one entity kind.
type AnchorConfig struct {
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
	Margin float64 `yaml:"margin"`
}

// Validate checks the values the simulation divides by or depends on.
func (c RunnerConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	}
	if c.World.GroundY <= 0 || c.World.GroundY > c.World.Height {
		return fmt.Errorf("%w: ground_y %.0f outside world", ErrInvalidConfig, c.World.GroundY)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	}
	if len(c.Obstacles.Widths) == 0 || len(c.Obstacles.Heights) == 0 {
		return fmt.Errorf("%w: obstacle sizes are empty", ErrInvalidConfig)
	}
	if c.Spawn.BaseInterval <= 0 || c.Spawn.MinInterval <= 0 {
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalidConfig)
	}
	if c.Flyers.MinAltitude > c.Flyers.MaxAltitude {
		return fmt.Errorf("%w: flyer min_altitude above max_altitude", ErrInvalidConfig)
	}
	if len(c.Spawn.Tiers) == 0 {
		return fmt.Errorf("%w: no spawn tiers", ErrInvalidConfig)
	}
	for i, tier := range c.Spawn.Tiers {
		total := 0.0
		for kind, w := range tier.Weights {
			if !IsSpawnKind(kind) {
				return fmt.Errorf("%w: tier %d: unknown kind %q", ErrInvalidConfig, i, kind)
			}
			if w < 0 {
				return fmt.Errorf("%w: tier %d: negative weight for %q", ErrInvalidConfig, i, kind)
			}
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("%w: tier %d has no positive weight", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Spawn kind names used in spawn tiers.
const (
	KindObstacle = "obstacle"
	KindFlyer    = "flyer"
	KindPlatform = "platform"
)

// IsSpawnKind reports whether name can appear in a spawn tier.
func IsSpawnKind(name string) bool {
	switch name {
	case KindObstacle, KindFlyer, KindPlatform:
		return true
	}
	return false
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Empty means no preset.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}
