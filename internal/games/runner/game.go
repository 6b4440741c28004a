// Package runner implements a side-scrolling platform runner.
// The player jumps over ground obstacles and flyers, lands on one-way
// platforms and collects coins while the world speeds up with the score.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// Registered game IDs.
const (
	IDRunner  = "runner"
	IDClassic = "runner_classic"
)

// Game adapts a World to the registry's Game interface and owns the
// highscore bookkeeping around it.
type Game struct {
	id        string
	title     string
	classic   bool
	world     *World
	scores    core.HighScoreStore
	sprites   SpriteSource
	highScore int
	runtime   core.RuntimeConfig
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall
// back to the config as written.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// New creates the full runner.
func New() *Game {
	return &Game{id: IDRunner, title: "Sky Runner"}
}

// NewClassic creates the classic variant: no flyers, steady spawn rate.
func NewClassic() *Game {
	return &Game{id: IDClassic, title: "Sky Runner Classic", classic: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// SetHighScores sets where the highscore is read from and written to.
// Without a store the highscore lives only as long as the Game.
func (g *Game) SetHighScores(s core.HighScoreStore) {
	g.scores = s
}

// SetSprites sets the sprite source used by Render.
func (g *Game) SetSprites(s SpriteSource) {
	g.sprites = s
}

// World returns the simulation state for pixel frontends and bots.
func (g *Game) World() *World {
	return g.world
}

// Speed returns the current scroll speed in pixels per step.
func (g *Game) Speed() float64 {
	if g.world == nil {
		return 0
	}
	return g.world.Speed
}

// HighScore returns the cached highscore.
func (g *Game) HighScore() int {
	return g.highScore
}

// Config returns the rules the next Reset will use: the config file, the
// difficulty preset and the variant applied in that order.
func (g *Game) Config() config.RunnerConfig {
	return g.loadConfig()
}

// loadConfig resolves the rules for this variant.
func (g *Game) loadConfig() config.RunnerConfig {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		log.Warn("runner config not loaded, using defaults", "path", configPath, "error", err)
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	if g.classic {
		config.ApplyClassicVariant(&cfg)
	}
	return cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.scores == nil {
		g.scores = core.NewMemoryHighScores()
	}

	cfg := g.loadConfig()
	if g.world == nil {
		g.world = NewWorld(cfg, runtime.Seed)
	} else {
		g.world.Configure(cfg)
		g.world.Reset(runtime.Seed)
	}

	hs, err := g.scores.HighScore(g.id)
	if err != nil {
		log.Warn("highscore not read", "game", g.id, "error", err)
		return
	}
	// An expired highscore reads as 0, so the cache follows the store
	g.highScore = hs
}

// Step advances the game by one tick. On a crash the session score is
// submitted to the highscore store before Step returns.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	events := g.world.Step(in)

	for _, ev := range events {
		if ev.Kind != core.EventCrash {
			continue
		}
		previous := g.highScore
		stored, err := g.scores.SubmitHighScore(g.id, ev.Value)
		if err != nil {
			log.Warn("highscore not saved", "game", g.id, "score", ev.Value, "error", err)
			stored = core.Max(previous, ev.Value)
		}
		g.highScore = stored
		// Another session may have raised the stored best since Reset
		if stored == ev.Value && ev.Value > previous {
			events = append(events, core.Event{Kind: core.EventNewHighScore, Tick: ev.Tick, Value: ev.Value})
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	sprites := g.sprites
	if sprites == nil {
		sprites = assets.Default()
	}
	Render(dst, g.world, sprites, g.highScore)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.world.Score,
		HighScore: g.highScore,
		GameOver:  g.world.Halted,
		Paused:    g.world.Paused,
	}
}

var _ registry.Persistent = (*Game)(nil)

// Register both variants with the registry
func init() {
	registry.Register(IDRunner, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}
