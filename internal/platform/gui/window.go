package gui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// TPS is the fixed simulation rate. Ebiten calls Update exactly this
// often, so one Update is one step.
const TPS = 60

// debugGlyphWidth is the advance of ebitenutil's debug font.
const debugGlyphWidth = 6

// ScoreRecorder stores finished runs for the leaderboard.
type ScoreRecorder interface {
	SaveRun(run storage.ScoreEntry) (int64, error)
}

// KeySource reports whether a key was pressed since the last update.
type KeySource func(k ebiten.Key) bool

// Options wires the window to the rest of the program. Every field may be
// left empty.
type Options struct {
	Scores     ScoreRecorder
	HighScores core.HighScoreStore
	Sound      audio.Player
	Sprites    *assets.Library
	Keys       KeySource
	Logger     *log.Logger
	Seed       int64
	Scale      float64 // Window size multiplier
}

// Window is an ebiten.Game showing one runner.
type Window struct {
	game     *runner.Game
	opts     Options
	images   map[string]*ebiten.Image
	seed     int64
	runTicks int
	runCoins int
	saved    bool
}

// New creates a window for game and resets it.
func New(game *runner.Game, opts Options) *Window {
	if opts.Sound == nil {
		opts.Sound = audio.NopPlayer{}
	}
	if opts.Sprites == nil {
		opts.Sprites = assets.Default()
	}
	if opts.Keys == nil {
		opts.Keys = inpututil.IsKeyJustPressed
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.HighScores != nil {
		game.SetHighScores(opts.HighScores)
	}
	game.SetSprites(opts.Sprites)

	w := &Window{
		game:   game,
		opts:   opts,
		images: make(map[string]*ebiten.Image),
		seed:   opts.Seed,
	}
	w.reset()
	return w
}

func (w *Window) reset() {
	seed := w.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w.game.Reset(core.RuntimeConfig{TickRate: TPS, Seed: seed})
	w.runTicks = 0
	w.runCoins = 0
	w.saved = false
}

// ReadInput collects this frame's actions. quit is true for Escape or Q.
func ReadInput(pressed KeySource) (in core.InputFrame, quit bool) {
	in = core.NewInputFrame()
	if pressed(ebiten.KeyEscape) || pressed(ebiten.KeyQ) {
		return in, true
	}
	if pressed(ebiten.KeySpace) || pressed(ebiten.KeyArrowUp) || pressed(ebiten.KeyW) {
		in.Set(core.ActionJump)
	}
	if pressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}
	if pressed(ebiten.KeyR) {
		in.Set(core.ActionRestart)
	}
	return in, false
}

// Update advances the game one step.
func (w *Window) Update() error {
	in, quit := ReadInput(w.opts.Keys)
	if quit {
		return ebiten.Termination
	}

	if in.Has(core.ActionRestart) && w.game.State().GameOver {
		// A fixed seed replays the same course, so only the first run uses it
		w.seed = 0
		w.reset()
		return nil
	}

	res := w.game.Step(in)
	if !res.State.GameOver && !res.State.Paused {
		w.runTicks++
	}
	for _, ev := range res.Events {
		if ev.Kind == core.EventCoin {
			w.runCoins++
		}
		w.opts.Sound.Play(ev)
	}

	if res.State.GameOver && !w.saved {
		w.saved = true
		w.saveRun(res.State.Score)
	}
	return nil
}

func (w *Window) saveRun(score int) {
	if w.opts.Scores == nil || score <= 0 {
		return
	}
	run := storage.ScoreEntry{
		GameID: w.game.ID(),
		Score:  score,
		Ticks:  w.runTicks,
		Coins:  w.runCoins,
	}
	if _, err := w.opts.Scores.SaveRun(run); err != nil {
		w.opts.Logger.Warn("score not saved", "game", run.GameID, "score", run.Score, "error", err)
	}
}

// Draw paints the world. It reads the game and never changes it.
func (w *Window) Draw(screen *ebiten.Image) {
	world := w.game.World()
	wc := world.Config().World

	screen.Fill(SkyColor)
	vector.DrawFilledRect(screen, 0, float32(wc.GroundY-wc.GroundStrip), float32(wc.Width), GroundHeight, GroundColor, false)

	for _, pl := range world.Platforms {
		w.drawEntity(screen, world, runner.KindPlatform, pl.Bounds())
	}
	for _, c := range world.Coins {
		if !c.Collected {
			w.drawEntity(screen, world, runner.KindCoin, c.Bounds())
		}
	}
	for _, o := range world.Obstacles {
		w.drawEntity(screen, world, o.Kind, o.Bounds())
	}
	w.drawEntity(screen, world, runner.KindPlayer, world.Player.Bounds())

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d | Highscore: %d | Speed: %.2f",
		world.Score, w.game.HighScore(), world.Speed), 8, 6)

	if world.Paused {
		printCentered(screen, int(wc.Width), int(wc.Height)/2, "PAUSED", "Press P to resume")
	}

	if world.Halted {
		vector.DrawFilledRect(screen, 0, 0, float32(wc.Width), float32(wc.Height), OverlayTint, false)
		printCentered(screen, int(wc.Width), int(wc.Height)/2-20,
			"GAME OVER",
			fmt.Sprintf("Score: %d  Highscore: %d", world.Score, core.Max(w.game.HighScore(), world.Score)),
			"R restart  |  Esc quit")
	}
}

// drawEntity draws the kind's sprite scaled onto its visual rectangle, or
// a solid rectangle in the kind's colour while the sprite is not ready.
func (w *Window) drawEntity(screen *ebiten.Image, world *runner.World, k runner.Kind, bounds core.RectF) {
	r := world.Anchors().VisualRect(k, bounds)

	img := w.spriteImage(k.String())
	if img == nil {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
			RGBA(runner.PlaceholderColor(k)), false)
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	screen.DrawImage(img, op)
}

// spriteImage returns the rasterised sprite, or nil while it is not ready.
func (w *Window) spriteImage(name string) *ebiten.Image {
	if img, ok := w.images[name]; ok {
		return img
	}
	sprite, ok := w.opts.Sprites.Sprite(name)
	if !ok || sprite.Width == 0 || sprite.Height == 0 {
		return nil
	}
	img := ebiten.NewImageFromImage(Rasterize(sprite))
	w.images[name] = img
	return img
}

// printCentered prints lines centred horizontally starting at y.
func printCentered(screen *ebiten.Image, width, y int, lines ...string) {
	for i, l := range lines {
		x := (width - len(l)*debugGlyphWidth) / 2
		ebitenutil.DebugPrintAt(screen, l, x, y+i*16)
	}
}

// Layout reports the world size; ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	wc := w.game.World().Config().World
	return int(wc.Width), int(wc.Height)
}

// Run opens the window and blocks until it is closed.
func Run(game *runner.Game, opts Options) error {
	win := New(game, opts)
	wc := game.World().Config().World

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(wc.Width*scale), int(wc.Height*scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetTPS(TPS)

	if err := ebiten.RunGame(win); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
