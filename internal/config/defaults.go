package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded YAML
// cannot be decoded.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:       800,
			Height:      300,
			GroundY:     260,
			GroundStrip: 12,
		},
		Physics: RunnerPhysics{
			Gravity:     0.6,
			JumpImpulse: -11,
			JumpGrace:   5,
			BaseSpeed:   4,
			SpeedRamp:   3000,
		},
		Player: RunnerPlayer{
			X:      120,
			Width:  60,
			Height: 60,
		},
		Obstacles: RunnerObstacles{
			Widths:  []float64{40, 50},
			Heights: []float64{40, 50},
		},
		Flyers: RunnerFlyers{
			Width:         50,
			Height:        40,
			MinAltitude:   100,
			MaxAltitude:   170,
			VerticalSpeed: 1.5,
		},
		Platforms: RunnerPlatforms{
			Width:      200,
			Height:     80,
			Lift:       30,
			LiftJitter: 80,
		},
		Coins: RunnerCoins{
			Size:   30,
			Lift:   30,
			Value:  150,
			Chance: 0.5,
		},
		Spawn: SpawnConfig{
			BaseInterval: 100,
			Jitter:       50,
			MinInterval:  60,
			IntervalRamp: 100,
			Tiers: []SpawnTier{
				{MinScore: 0, Weights: map[string]float64{KindObstacle: 1, KindPlatform: 1}},
				{MinScore: 1500, Weights: map[string]float64{KindObstacle: 2, KindFlyer: 1, KindPlatform: 2}},
				{MinScore: 4000, Weights: map[string]float64{KindObstacle: 2, KindFlyer: 2, KindPlatform: 2}},
			},
		},
		Anchors: map[string]AnchorConfig{
			"player":   {Margin: 10},
			"obstacle": {},
			"flyer":    {Margin: 4},
			"platform": {},
			"coin":     {},
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `runner config dump`.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
