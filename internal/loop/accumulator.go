package loop

import "time"

// DefaultMaxSteps bounds catch-up after a stall.
const DefaultMaxSteps = 5

// Accumulator converts elapsed time into a whole number of fixed steps.
// Leftover time carries over to the next call.
type Accumulator struct {
	Step     time.Duration // Simulation quantum
	MaxSteps int           // Most steps a single Advance may return

	last    time.Time
	pending time.Duration
	started bool
}

// NewAccumulator creates an accumulator for tickRate steps per second.
func NewAccumulator(tickRate, maxSteps int) *Accumulator {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Accumulator{
		Step:     time.Second / time.Duration(tickRate),
		MaxSteps: maxSteps,
	}
}

// Start sets the time the next Advance measures from.
func (a *Accumulator) Start(now time.Time) {
	a.last = now
	a.pending = 0
	a.started = true
}

// Advance returns how many steps are due at now. The first call on an
// unstarted accumulator yields exactly one step. When more than MaxSteps
// are due the backlog is dropped.
func (a *Accumulator) Advance(now time.Time) int {
	if !a.started {
		a.Start(now)
		return 1
	}

	elapsed := now.Sub(a.last)
	a.last = now
	if elapsed <= 0 {
		return 0
	}

	a.pending += elapsed
	n := int(a.pending / a.Step)
	if n > a.MaxSteps {
		a.pending = 0
		return a.MaxSteps
	}
	a.pending -= time.Duration(n) * a.Step
	return n
}
