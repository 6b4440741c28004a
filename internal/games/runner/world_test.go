package runner

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

const eps = 1e-9

// quietWorld returns a default world whose spawner will not fire for a
// long time.
func quietWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(config.DefaultRunnerConfig(), 1)
	w.SpawnTimer = 1e9
	return w
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

func jumpInput() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestResetStartState(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	w := NewWorld(cfg, 7)

	for i := 0; i < 300; i++ {
		w.Step(jumpInput())
	}
	w.Reset(7)

	if w.Score != 0 || w.Ticks != 0 {
		t.Errorf("Reset should clear score and ticks, got %d/%d", w.Score, w.Ticks)
	}
	if w.Halted || w.Paused {
		t.Error("Reset should clear halted and paused")
	}
	if len(w.Obstacles)+len(w.Platforms)+len(w.Coins) != 0 {
		t.Error("Reset should empty all entity containers")
	}
	if w.Player.Bottom() != cfg.World.GroundY || w.Player.VY != 0 || !w.Player.OnGround {
		t.Errorf("Reset should stand the player on the ground, got %+v", w.Player)
	}
	if w.Speed != cfg.Physics.BaseSpeed {
		t.Errorf("Speed = %f, expected %f", w.Speed, cfg.Physics.BaseSpeed)
	}
}

func TestOneStepWithoutSpawns(t *testing.T) {
	w := quietWorld(t)
	cfg := w.Config()

	// Lift the player so gravity is observable
	w.Player.Y = 100
	w.Player.OnGround = false
	y0, vy0 := w.Player.Y, w.Player.VY

	w.Step(noInput())

	if math.Abs(w.Player.VY-(vy0+cfg.Physics.Gravity)) > eps {
		t.Errorf("VY = %f, expected %f", w.Player.VY, vy0+cfg.Physics.Gravity)
	}
	if math.Abs(w.Player.Y-(y0+w.Player.VY)) > eps {
		t.Errorf("Y = %f, expected %f", w.Player.Y, y0+w.Player.VY)
	}
	if w.Score != 1 {
		t.Errorf("Score = %d, expected 1", w.Score)
	}
}

func TestGravityAccumulates(t *testing.T) {
	w := quietWorld(t)
	g := w.Config().Physics.Gravity

	w.Player.Y = 0
	w.Player.OnGround = false
	prev := w.Player.VY
	for i := 0; i < 10; i++ {
		w.Step(noInput())
		if w.Player.OnGround {
			t.Fatalf("player reached the ground after %d steps", i+1)
		}
		if math.Abs(w.Player.VY-(prev+g)) > eps {
			t.Fatalf("step %d: VY = %f, expected %f", i, w.Player.VY, prev+g)
		}
		prev = w.Player.VY
	}
}

func TestGroundClamp(t *testing.T) {
	w := quietWorld(t)
	groundY := w.Config().World.GroundY

	// Feet 2px above ground, falling fast enough to cross it
	w.Player.Y = groundY - w.Player.H - 2
	w.Player.VY = 5
	w.Player.OnGround = false

	events := w.Step(noInput())

	if w.Player.Bottom() != groundY {
		t.Errorf("Bottom = %f, expected ground line %f", w.Player.Bottom(), groundY)
	}
	if w.Player.VY != 0 || !w.Player.OnGround {
		t.Errorf("expected VY 0 and grounded, got %+v", w.Player)
	}
	if !hasEvent(events, core.EventLand) {
		t.Error("landing on the ground should emit a land event")
	}
}

func TestJustJumpedNotCaughtByGround(t *testing.T) {
	w := quietWorld(t)
	cfg := w.Config()

	w.Player.Y = cfg.World.GroundY - w.Player.H
	w.Player.VY = -11
	w.Player.OnGround = false

	w.Step(noInput())

	if math.Abs(w.Player.VY-(-11+cfg.Physics.Gravity)) > eps {
		t.Errorf("VY = %f, expected %f", w.Player.VY, -11+cfg.Physics.Gravity)
	}
	if w.Player.OnGround {
		t.Error("player moving up should not be grounded")
	}
	if w.Player.Bottom() >= cfg.World.GroundY {
		t.Error("player should have left the ground")
	}
}

func TestJump(t *testing.T) {
	w := quietWorld(t)
	cfg := w.Config()

	events := w.Step(jumpInput())
	if !hasEvent(events, core.EventJump) {
		t.Fatal("grounded jump should emit a jump event")
	}
	expected := cfg.Physics.JumpImpulse + cfg.Physics.Gravity
	if math.Abs(w.Player.VY-expected) > eps {
		t.Errorf("VY after jump = %f, expected %f", w.Player.VY, expected)
	}

	// Well above the grace band: a second jump is ignored
	for i := 0; i < 5; i++ {
		w.Step(noInput())
	}
	vy := w.Player.VY
	if events := w.Step(jumpInput()); hasEvent(events, core.EventJump) {
		t.Error("mid-air jump should be ignored")
	}
	if math.Abs(w.Player.VY-(vy+cfg.Physics.Gravity)) > eps {
		t.Error("ignored jump should not change velocity")
	}
}

func TestJumpGrace(t *testing.T) {
	w := quietWorld(t)
	cfg := w.Config()

	w.Player.OnGround = false
	w.Player.Y = cfg.World.GroundY - w.Player.H - (cfg.Physics.JumpGrace - 1)
	if !w.CanJump() {
		t.Error("jump should be allowed within the grace band")
	}

	w.Player.Y = cfg.World.GroundY - w.Player.H - (cfg.Physics.JumpGrace + 1)
	if w.CanJump() {
		t.Error("jump should not be allowed above the grace band")
	}
}

func TestPlatformLanding(t *testing.T) {
	tests := []struct {
		name    string
		feet    float64 // Player bottom before the step
		vy      float64
		platX   float64
		platH   float64
		catches bool
	}{
		{"falling across top", 95, 8, 100, 80, true},
		{"resting on top", 100, 0, 100, 80, true},
		{"moving up through top", 105, -8, 100, 80, false},
		{"falling but above top after step", 80, 2, 100, 80, false},
		{"already below top", 101, 2, 100, 80, false},
		{"no horizontal overlap", 95, 4, 400, 80, false},
		{"fast fall through thin platform", 90, 30, 100, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := quietWorld(t)
			top := 100.0
			w.Platforms = append(w.Platforms, Platform{X: tc.platX, Y: top, W: 200, H: tc.platH})
			w.Player.Y = tc.feet - w.Player.H
			w.Player.VY = tc.vy
			w.Player.OnGround = false

			w.Step(noInput())

			caught := w.Player.OnGround && w.Player.Bottom() == top
			if caught != tc.catches {
				t.Errorf("caught = %v, expected %v (player %+v)", caught, tc.catches, w.Player)
			}
			if caught && w.Player.VY != 0 {
				t.Errorf("landing should zero VY, got %f", w.Player.VY)
			}
		})
	}
}

func TestStandingOnPlatformStays(t *testing.T) {
	w := quietWorld(t)
	w.Platforms = append(w.Platforms, Platform{X: 60, Y: 150, W: 200, H: 80})
	w.Player.Y = 150 - w.Player.H
	w.Player.OnGround = true

	for i := 0; i < 10; i++ {
		if events := w.Step(noInput()); hasEvent(events, core.EventLand) {
			t.Fatal("standing still should not emit land events")
		}
		if w.Player.Bottom() != 150 {
			t.Fatalf("step %d: player left the platform, bottom = %f", i, w.Player.Bottom())
		}
	}
}

func TestCullExactStep(t *testing.T) {
	w := quietWorld(t)
	cfg := w.Config()
	cfg.Physics.SpeedRamp = 0 // constant speed keeps the arithmetic exact
	w.Configure(cfg)
	w.Reset(1)
	w.SpawnTimer = 1e9

	// Far above the player's lane so it never collides
	w.Platforms = append(w.Platforms, Platform{X: 10, Y: 0, W: 50, H: 5})
	speed := cfg.Physics.BaseSpeed

	x := 10.0
	for step := 1; step < 100; step++ {
		w.Step(noInput())
		x -= speed
		present := len(w.Platforms) == 1
		if x+50 < 0 {
			if present {
				t.Fatalf("step %d: platform with right edge %f still present", step, x+50)
			}
			return
		}
		if !present {
			t.Fatalf("step %d: platform with right edge %f removed early", step, x+50)
		}
	}
	t.Fatal("platform never culled")
}

func TestCullKeepsVisible(t *testing.T) {
	items := []Obstacle{
		{X: -51, W: 50},
		{X: -50, W: 50}, // Right edge exactly 0 stays
		{X: 10, W: 50},
		{X: -100, W: 50},
	}
	kept := cull(items)
	if len(kept) != 2 || kept[0].X != -50 || kept[1].X != 10 {
		t.Errorf("cull kept %+v", kept)
	}
}

func TestCoinCollectedOnce(t *testing.T) {
	w := quietWorld(t)
	value := w.Config().Coins.Value

	// Directly on the player and moving with it for a few steps
	w.Coins = append(w.Coins, Coin{X: w.Player.X + 15, Y: w.Player.Y + 15, W: 30, H: 30})

	events := w.Step(noInput())
	if !hasEvent(events, core.EventCoin) {
		t.Fatal("overlapping coin should be collected")
	}
	if w.Score != 1+value {
		t.Errorf("Score = %d, expected %d", w.Score, 1+value)
	}

	for i := 0; i < 3; i++ {
		if events := w.Step(noInput()); hasEvent(events, core.EventCoin) {
			t.Fatal("collected coin should never award again")
		}
	}
	if w.Score != 4+value {
		t.Errorf("Score = %d, expected %d", w.Score, 4+value)
	}
}

func TestObstacleCrashHalts(t *testing.T) {
	w := quietWorld(t)
	cfg := w.Config()
	w.Obstacles = append(w.Obstacles, Obstacle{
		Kind: KindObstacle,
		X:    w.Player.X + 20,
		Y:    cfg.World.GroundY - 50,
		W:    50,
		H:    50,
	})

	events := w.Step(noInput())
	if !w.Halted {
		t.Fatal("overlapping obstacle should halt the world")
	}
	if !hasEvent(events, core.EventCrash) {
		t.Error("crash should emit a crash event")
	}

	score := w.Score
	if events := w.Step(jumpInput()); events != nil {
		t.Error("halted world should not produce events")
	}
	if w.Score != score {
		t.Error("halted world should not advance")
	}

	w.Reset(1)
	if w.Halted || w.Score != 0 {
		t.Errorf("Reset should restore play, got halted=%v score=%d", w.Halted, w.Score)
	}
}

func TestHitMarginForgivesGrazes(t *testing.T) {
	w := quietWorld(t)
	cfg := w.Config()

	// Visual bounds overlap by 5px, inside the player's 10px margin
	w.Obstacles = append(w.Obstacles, Obstacle{
		Kind: KindObstacle,
		X:    w.Player.X + w.Player.W - 5 + w.Speed,
		Y:    cfg.World.GroundY - 40,
		W:    40,
		H:    40,
	})
	w.Step(noInput())
	if w.Halted {
		t.Error("graze inside the hit margin should not crash")
	}
}

func TestPause(t *testing.T) {
	w := quietWorld(t)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	w.Step(pause)
	if !w.Paused {
		t.Fatal("pause input should pause")
	}
	for i := 0; i < 5; i++ {
		w.Step(noInput())
	}
	if w.Ticks != 0 {
		t.Errorf("paused world advanced %d ticks", w.Ticks)
	}
	w.Step(pause)
	if w.Paused {
		t.Error("second pause input should resume")
	}
}

func TestSpawnerFirstStep(t *testing.T) {
	w := NewWorld(config.DefaultRunnerConfig(), 3)
	events := w.Step(noInput())

	if !hasEvent(events, core.EventSpawn) {
		t.Fatal("spawner should fire on the first step")
	}
	if total := len(w.Obstacles) + len(w.Platforms); total != 1 {
		t.Errorf("expected one spawned entity, got %d", total)
	}
	cfg := w.Config()
	if w.SpawnTimer < cfg.Spawn.MinInterval || w.SpawnTimer >= cfg.Spawn.BaseInterval+cfg.Spawn.Jitter {
		t.Errorf("SpawnTimer = %f outside [%f, %f)", w.SpawnTimer, cfg.Spawn.MinInterval, cfg.Spawn.BaseInterval+cfg.Spawn.Jitter)
	}
}

func TestSpawnedGeometry(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	w := NewWorld(cfg, 11)

	for i := 0; i < 50; i++ {
		w.spawnObstacle()
		w.spawnPlatform()
		w.spawnFlyer()
	}

	for _, o := range w.Obstacles {
		switch o.Kind {
		case KindObstacle:
			if b := o.Bounds().Bottom(); b != cfg.World.GroundY {
				t.Errorf("ground obstacle should stand on the ground, bottom = %f", b)
			}
			if (o.W != 40 && o.W != 50) || (o.H != 40 && o.H != 50) {
				t.Errorf("unexpected obstacle size %fx%f", o.W, o.H)
			}
		case KindFlyer:
			if o.Y < cfg.Flyers.MinAltitude || o.Y > cfg.Flyers.MaxAltitude {
				t.Errorf("flyer spawned at %f outside its band", o.Y)
			}
		}
	}
	for _, p := range w.Platforms {
		lift := cfg.World.GroundY - p.Y
		if lift < cfg.Platforms.Lift-eps || lift > cfg.Platforms.Lift+cfg.Platforms.LiftJitter+eps {
			t.Errorf("platform lift %f out of range", lift)
		}
	}
	for _, c := range w.Coins {
		if c.W != cfg.Coins.Size || c.H != cfg.Coins.Size {
			t.Errorf("coin size %fx%f", c.W, c.H)
		}
	}
	if len(w.Coins) == 0 || len(w.Coins) == 50 {
		t.Errorf("coin chance looks wrong: %d coins for 50 platforms", len(w.Coins))
	}
}

func TestFlyerBounces(t *testing.T) {
	w := quietWorld(t)
	fc := w.Config().Flyers
	w.Obstacles = append(w.Obstacles, Obstacle{Kind: KindFlyer, X: 700, Y: fc.MinAltitude, W: 10, H: 10, VY: -fc.VerticalSpeed})

	w.Step(noInput())
	if w.Obstacles[0].VY <= 0 {
		t.Error("flyer crossing min altitude should turn downward")
	}

	w.Obstacles[0].Y = fc.MaxAltitude
	w.Obstacles[0].VY = fc.VerticalSpeed
	w.Step(noInput())
	if w.Obstacles[0].VY >= 0 {
		t.Error("flyer crossing max altitude should turn upward")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() *World {
		w := NewWorld(config.DefaultRunnerConfig(), 12345)
		for i := 0; i < 2000 && !w.Halted; i++ {
			in := core.NewInputFrame()
			if i%37 == 0 {
				in.Set(core.ActionJump)
			}
			w.Step(in)
		}
		return w
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Ticks != b.Ticks || a.Halted != b.Halted {
		t.Fatalf("runs diverged: %d/%d/%v vs %d/%d/%v", a.Score, a.Ticks, a.Halted, b.Score, b.Ticks, b.Halted)
	}
	if !reflect.DeepEqual(a.Obstacles, b.Obstacles) || !reflect.DeepEqual(a.Platforms, b.Platforms) {
		t.Error("entity containers diverged")
	}
}

func TestSpeedFollowsScore(t *testing.T) {
	w := quietWorld(t)
	pacing := config.NewPacing(w.Config())
	for i := 0; i < 100; i++ {
		w.Step(noInput())
		if w.Speed != pacing.Speed(w.Score) {
			t.Fatalf("Speed = %f, expected %f at score %d", w.Speed, pacing.Speed(w.Score), w.Score)
		}
	}
}
