package autopilot

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

func newWorld(t *testing.T) *runner.World {
	t.Helper()
	w := runner.NewWorld(config.DefaultRunnerConfig(), 1)
	w.SpawnTimer = 1e9
	return w
}

// obstacleAt places a ground obstacle whose left edge is gap pixels
// ahead of the player's hit rectangle.
func obstacleAt(w *runner.World, gap float64) {
	hit := w.Anchors().HitRect(runner.KindPlayer, w.Player.Bounds())
	groundY := w.Config().World.GroundY
	w.Obstacles = append(w.Obstacles, runner.Obstacle{
		Kind: runner.KindObstacle,
		X:    hit.Right() + gap,
		Y:    groundY - 50,
		W:    50,
		H:    50,
	})
}

func TestShouldJump(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(w *runner.World)
		expected bool
	}{
		{"clear road", func(w *runner.World) {}, false},
		{"obstacle in range", func(w *runner.World) { obstacleAt(w, 20) }, true},
		{"obstacle far away", func(w *runner.World) { obstacleAt(w, 300) }, false},
		{"obstacle already passed", func(w *runner.World) { obstacleAt(w, -200) }, false},
		{"airborne", func(w *runner.World) {
			obstacleAt(w, 20)
			w.Player.Y -= 80
			w.Player.OnGround = false
		}, false},
		{"high flyer", func(w *runner.World) {
			hit := w.Anchors().HitRect(runner.KindPlayer, w.Player.Bounds())
			w.Obstacles = append(w.Obstacles, runner.Obstacle{
				Kind: runner.KindFlyer, X: hit.Right() + 10, Y: 100, W: 50, H: 40,
			})
		}, false},
		{"halted", func(w *runner.World) {
			obstacleAt(w, 20)
			w.Halted = true
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(t)
			tc.setup(w)
			if got := New().ShouldJump(w); got != tc.expected {
				t.Errorf("ShouldJump() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestDecideRestartsWhenHalted(t *testing.T) {
	w := newWorld(t)
	w.Halted = true
	if in := New().Decide(w); !in.Has(core.ActionRestart) {
		t.Error("halted world should ask for a restart")
	}
}

func TestPilotClearsObstacle(t *testing.T) {
	w := newWorld(t)
	obstacleAt(w, 120)
	p := New()

	for i := 0; i < 120; i++ {
		w.Step(p.Decide(w))
		if w.Halted {
			t.Fatalf("pilot crashed at step %d", i)
		}
	}
	if len(w.Obstacles) != 0 {
		t.Error("obstacle should have scrolled past")
	}
}

func TestPilotOutlastsIdle(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	config.ApplyClassicVariant(&cfg)

	run := func(pilot *Pilot) int {
		w := runner.NewWorld(cfg, 99)
		for i := 0; i < 5000 && !w.Halted; i++ {
			in := core.NewInputFrame()
			if pilot != nil {
				in = pilot.Decide(w)
			}
			w.Step(in)
		}
		return w.Ticks
	}

	idle := run(nil)
	piloted := run(New())
	if piloted <= idle {
		t.Errorf("pilot survived %d steps, idle player %d", piloted, idle)
	}
}
