package config

import "math"

// Pacing derives scroll speed and spawn interval from the score.
// Both ramps are driven by score only; elapsed time plays no part.
type Pacing struct {
	baseSpeed    float64
	speedRamp    float64
	baseInterval float64
	minInterval  float64
	intervalRamp float64
}

// NewPacing creates a pacing calculator from a runner config.
func NewPacing(cfg RunnerConfig) Pacing {
	return Pacing{
		baseSpeed:    cfg.Physics.BaseSpeed,
		speedRamp:    cfg.Physics.SpeedRamp,
		baseInterval: cfg.Spawn.BaseInterval,
		minInterval:  cfg.Spawn.MinInterval,
		intervalRamp: cfg.Spawn.IntervalRamp,
	}
}

// IsRamping returns whether speed grows with score.
func (p Pacing) IsRamping() bool {
	return p.speedRamp > 0
}

// Speed returns the scroll speed for score. It has no upper bound.
func (p Pacing) Speed(score int) float64 {
	if p.speedRamp <= 0 {
		return p.baseSpeed
	}
	return p.baseSpeed + float64(score)/p.speedRamp
}

// SpawnInterval returns the deterministic part of the spawn timer reset,
// shrinking with score but never below the minimum interval.
func (p Pacing) SpawnInterval(score int) float64 {
	if p.intervalRamp <= 0 {
		return p.baseInterval
	}
	interval := p.baseInterval - float64(score)/p.intervalRamp
	return math.Max(math.Min(p.minInterval, p.baseInterval), interval)
}
