package runner

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// World owns the whole simulation state. Step mutates it; nothing else
// does. Frontends read the exported fields but never write them.
type World struct {
	cfg     config.RunnerConfig
	pacing  config.Pacing
	policy  SpawnPolicy
	anchors Anchors
	rng     *rand.Rand

	Player    Player
	Obstacles []Obstacle
	Platforms []Platform
	Coins     []Coin

	Score      int
	Ticks      int     // Simulation steps taken since reset
	Speed      float64 // Scroll speed in pixels per step
	Distance   float64 // Total scrolled distance, drives ground texture
	SpawnTimer float64
	Halted     bool
	Paused     bool
}

// NewWorld creates a world from cfg and resets it with seed.
func NewWorld(cfg config.RunnerConfig, seed int64) *World {
	w := &World{}
	w.Configure(cfg)
	w.Reset(seed)
	return w
}

// Configure swaps the rules. It takes effect on the next Reset.
func (w *World) Configure(cfg config.RunnerConfig) {
	w.cfg = cfg
	w.pacing = config.NewPacing(cfg)
	w.policy = NewSpawnPolicy(cfg.Spawn.Tiers)
	w.anchors = NewAnchors(cfg.Anchors)
}

// Config returns the rules the world runs with.
func (w *World) Config() config.RunnerConfig {
	return w.cfg
}

// Anchors returns the per-kind visual anchors.
func (w *World) Anchors() Anchors {
	return w.anchors
}

// Policy returns the spawn policy.
func (w *World) Policy() SpawnPolicy {
	return w.policy
}

// Reset returns the world to its start state with a fresh RNG.
func (w *World) Reset(seed int64) {
	pc := w.cfg.Player
	w.Player = Player{
		X:        pc.X,
		Y:        w.cfg.World.GroundY - pc.Height,
		W:        pc.Width,
		H:        pc.Height,
		OnGround: true,
	}
	w.Obstacles = w.Obstacles[:0]
	w.Platforms = w.Platforms[:0]
	w.Coins = w.Coins[:0]
	w.Score = 0
	w.Ticks = 0
	w.Speed = w.pacing.Speed(0)
	w.Distance = 0
	w.SpawnTimer = 0
	w.Halted = false
	w.Paused = false
	w.rng = rand.New(rand.NewSource(seed))
}

// Step advances the simulation by one fixed quantum and returns the
// events it produced. A halted world does nothing.
func (w *World) Step(in core.InputFrame) []core.Event {
	if w.Halted {
		return nil
	}

	if in.Has(core.ActionPause) {
		w.Paused = !w.Paused
	}
	if w.Paused {
		return nil
	}

	var events []core.Event
	tick := w.Ticks + 1
	emit := func(kind core.EventKind, value int) {
		events = append(events, core.Event{Kind: kind, Tick: tick, Value: value})
	}

	if in.Has(core.ActionJump) && w.CanJump() {
		w.Player.VY = w.cfg.Physics.JumpImpulse
		emit(core.EventJump, 0)
	}

	w.Ticks++
	w.Score++
	w.Speed = w.pacing.Speed(w.Score)
	w.Distance += w.Speed

	wasGrounded := w.Player.OnGround
	prevBottom := w.Player.Bottom()
	landed := w.applyGravity()

	if kind, ok := w.tickSpawner(); ok {
		emit(core.EventSpawn, int(kind))
	}

	w.scroll()

	hit := w.anchors.HitRect(KindPlayer, w.Player.Bounds())

	for _, o := range w.Obstacles {
		if hit.Intersects(w.anchors.HitRect(o.Kind, o.Bounds())) {
			w.Halted = true
			emit(core.EventCrash, w.Score)
			return events
		}
	}

	for i := range w.Coins {
		c := &w.Coins[i]
		if c.Collected {
			continue
		}
		if hit.Intersects(w.anchors.HitRect(KindCoin, c.Bounds())) {
			c.Collected = true
			w.Score += w.cfg.Coins.Value
			emit(core.EventCoin, w.cfg.Coins.Value)
		}
	}

	if w.landOnPlatform(prevBottom) {
		landed = true
	}
	if landed && !wasGrounded {
		emit(core.EventLand, 0)
	}

	return events
}

// CanJump reports whether a jump input would be honoured now: the player
// is grounded or its feet are within the grace distance of the ground.
func (w *World) CanJump() bool {
	if w.Halted || w.Paused {
		return false
	}
	return w.Player.OnGround || w.Player.Bottom() > w.cfg.World.GroundY-w.cfg.Physics.JumpGrace
}

// applyGravity integrates the player and clamps it to the ground line.
// Returns true when the ground caught the player this step.
func (w *World) applyGravity() bool {
	p := &w.Player
	p.VY += w.cfg.Physics.Gravity
	p.Y += p.VY

	groundY := w.cfg.World.GroundY
	if p.Bottom() >= groundY {
		p.Y = groundY - p.H
		p.VY = 0
		p.OnGround = true
		return true
	}
	p.OnGround = false
	return false
}

// landOnPlatform runs the swept one-way landing test. Of all platforms
// whose top the feet crossed this step, the highest one wins.
func (w *World) landOnPlatform(prevBottom float64) bool {
	p := &w.Player
	if p.VY < 0 {
		return false
	}

	bounds := p.Bounds()
	bottom := p.Bottom()
	found := false
	top := 0.0
	for _, pl := range w.Platforms {
		surface := w.anchors.HitRect(KindPlatform, pl.Bounds())
		if !bounds.OverlapsX(surface) {
			continue
		}
		if prevBottom <= surface.Y && bottom >= surface.Y {
			if !found || surface.Y < top {
				top = surface.Y
				found = true
			}
		}
	}
	if !found {
		return false
	}

	p.Y = top - p.H
	p.VY = 0
	p.OnGround = true
	return true
}

// scroll moves every entity left by the current speed, bounces flyers
// inside their altitude band and culls what left the surface.
func (w *World) scroll() {
	fc := w.cfg.Flyers
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		o.X -= w.Speed
		if o.Kind != KindFlyer {
			continue
		}
		o.Y += o.VY
		if (o.Y < fc.MinAltitude && o.VY < 0) || (o.Y > fc.MaxAltitude && o.VY > 0) {
			o.VY = -o.VY
		}
	}
	for i := range w.Platforms {
		w.Platforms[i].X -= w.Speed
	}
	for i := range w.Coins {
		w.Coins[i].X -= w.Speed
	}

	w.Obstacles = cull(w.Obstacles)
	w.Platforms = cull(w.Platforms)
	w.Coins = cull(w.Coins)
}

// tickSpawner counts the spawn timer down and spawns one entity at the
// right edge when it expires.
func (w *World) tickSpawner() (Kind, bool) {
	w.SpawnTimer--
	if w.SpawnTimer > 0 {
		return 0, false
	}

	kind := w.policy.Pick(w.Score, w.rng.Float64())
	switch kind {
	case KindFlyer:
		w.spawnFlyer()
	case KindPlatform:
		w.spawnPlatform()
	default:
		kind = KindObstacle
		w.spawnObstacle()
	}

	w.SpawnTimer = w.pacing.SpawnInterval(w.Score) + w.rng.Float64()*w.cfg.Spawn.Jitter
	return kind, true
}

func (w *World) spawnObstacle() {
	oc := w.cfg.Obstacles
	width := oc.Widths[w.rng.Intn(len(oc.Widths))]
	height := oc.Heights[w.rng.Intn(len(oc.Heights))]
	w.Obstacles = append(w.Obstacles, Obstacle{
		Kind: KindObstacle,
		X:    w.cfg.World.Width,
		Y:    w.cfg.World.GroundY - height,
		W:    width,
		H:    height,
	})
}

func (w *World) spawnFlyer() {
	fc := w.cfg.Flyers
	vy := fc.VerticalSpeed
	if w.rng.Intn(2) == 0 {
		vy = -vy
	}
	w.Obstacles = append(w.Obstacles, Obstacle{
		Kind: KindFlyer,
		X:    w.cfg.World.Width,
		Y:    fc.MinAltitude + w.rng.Float64()*(fc.MaxAltitude-fc.MinAltitude),
		W:    fc.Width,
		H:    fc.Height,
		VY:   vy,
	})
}

// spawnPlatform adds a platform and, by chance, a coin resting on its
// centre.
func (w *World) spawnPlatform() {
	pc := w.cfg.Platforms
	pl := Platform{
		X: w.cfg.World.Width,
		Y: w.cfg.World.GroundY - pc.Lift - w.rng.Float64()*pc.LiftJitter,
		W: pc.Width,
		H: pc.Height,
	}
	w.Platforms = append(w.Platforms, pl)

	cc := w.cfg.Coins
	if w.rng.Float64() < cc.Chance {
		w.Coins = append(w.Coins, Coin{
			X: pl.X + pl.W/2 - cc.Size/2,
			Y: pl.Y - cc.Lift,
			W: cc.Size,
			H: cc.Size,
		})
	}
}
