package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/loop"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// ScoreRecorder stores finished runs for the leaderboard.
type ScoreRecorder interface {
	SaveRun(run storage.ScoreEntry) (int64, error)
}

// Options wires a game session to the rest of the program. Every field
// may be left empty.
type Options struct {
	Scores     ScoreRecorder       // Leaderboard, one row per finished run
	HighScores core.HighScoreStore // Injected into games that keep a highscore
	Sinks      []EventSink         // Receive every step result
	Logger     *log.Logger
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	acc        *loop.Accumulator
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	runTicks   int // Steps in the current run
	runCoins   int // Coins collected in the current run
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if p, ok := game.(registry.Persistent); ok && opts.HighScores != nil {
		p.SetHighScores(opts.HighScores)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		acc:        loop.NewAccumulator(cfg.TickRate, loop.DefaultMaxSteps),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is sized in pixels, so a resize only changes the projection
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only from a stopped game
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}

	return m, nil
}

// handleTick runs the steps that are due at now.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart(now)
		return m, tickCmd(m.config.TickRate)
	}

	steps := m.acc.Advance(now)
	for range steps {
		m.step()
		// Keys apply to the first step of a batch only
		m.inputFrame.Clear()
	}

	return m, tickCmd(m.config.TickRate)
}

// step advances the game once and hands the result to the sinks.
func (m *Model) step() {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if !m.gameState.GameOver && !m.gameState.Paused {
		m.runTicks++
	}
	for _, ev := range result.Events {
		if ev.Kind == core.EventCoin {
			m.runCoins++
		}
	}

	for _, sink := range m.opts.Sinks {
		sink.Consume(m.game, result)
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		m.saveRun()
		m.scoreSaved = true
	}
}

// restart begins a new run with a fresh seed.
func (m *Model) restart(now time.Time) {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.runTicks = 0
	m.runCoins = 0
	m.inputFrame.Clear()
	m.acc.Start(now)
}

// saveRun records the finished run on the leaderboard.
func (m *Model) saveRun() {
	if m.opts.Scores == nil {
		return
	}
	run := storage.ScoreEntry{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Ticks:  m.runTicks,
		Coins:  m.runCoins,
	}
	if _, err := m.opts.Scores.SaveRun(run); err != nil {
		m.opts.Logger.Warn("score not saved", "game", run.GameID, "score", run.Score, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot not saved", "error", err)
		return
	}
	dir := filepath.Join(home, ".runner", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot not saved", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot not saved", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen at the last step.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
