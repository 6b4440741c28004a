// Package autopilot plays the runner without a human. It drives the
// demo command and long-running integration tests.
package autopilot

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

// DefaultLead is how many steps before contact the pilot jumps. With the
// default physics a jump clears a 50px obstacle from about 4 to 10 steps
// after take-off.
const DefaultLead = 7

// Pilot decides when to jump.
type Pilot struct {
	Lead float64 // Steps of warning before an obstacle reaches the player
}

// New creates a pilot with the default lead.
func New() *Pilot {
	return &Pilot{Lead: DefaultLead}
}

// Decide returns the input for the next step of w.
func (p *Pilot) Decide(w *runner.World) core.InputFrame {
	in := core.NewInputFrame()
	if w.Halted {
		in.Set(core.ActionRestart)
		return in
	}
	if p.ShouldJump(w) {
		in.Set(core.ActionJump)
	}
	return in
}

// ShouldJump reports whether an obstacle in the player's lane is within
// the look-ahead distance and a jump is possible.
func (p *Pilot) ShouldJump(w *runner.World) bool {
	if !w.CanJump() {
		return false
	}

	anchors := w.Anchors()
	hit := anchors.HitRect(runner.KindPlayer, w.Player.Bounds())
	reach := w.Speed * p.Lead

	for _, o := range w.Obstacles {
		oh := anchors.HitRect(o.Kind, o.Bounds())
		// Only things that would hit the player where it stands
		if oh.Bottom() <= hit.Y || oh.Y >= hit.Bottom() {
			continue
		}
		gap := oh.X - hit.Right()
		if gap >= 0 && gap <= reach {
			return true
		}
	}
	return false
}
