package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

const (
	leaderboardSize = 100
	chromeRows      = 10 // Title, tabs, summary, borders and help
)

// ScoreSource lists the best runs of a game.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

var (
	boardTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	tabActive  = tabIdle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimText    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type boardKeys struct {
	Up, Down, Next, Prev, Back, Quit key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Prev}}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next variant")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev variant")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// runSummary aggregates the listed runs of one variant.
type runSummary struct {
	best, runs, longest, coins int
}

func summarize(runs []storage.ScoreEntry) runSummary {
	var s runSummary
	s.runs = len(runs)
	for _, r := range runs {
		s.best = max(s.best, r.Score)
		s.longest = max(s.longest, r.Ticks)
		s.coins += r.Coins
	}
	return s
}

// ScoreboardModel shows the leaderboard of one variant at a time.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	store    ScoreSource
	runs     []storage.ScoreEntry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     boardKeys
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel opens the leaderboard on the first registered variant.
func NewScoreboardModel(store ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		help:     help.New(),
		keys:     newBoardKeys(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	when := 14
	if m.width > 70 {
		when = 20
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Time", Width: 7},
			{Title: "Coins", Width: 6},
			{Title: "Date", Width: when},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-chromeRows)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
		BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)
	return t
}

// reload fetches the runs of the current variant.
func (m *ScoreboardModel) reload() {
	m.runs, m.loadErr = nil, nil
	if m.store != nil && len(m.variants) > 0 {
		m.runs, m.loadErr = m.store.TopScores(m.variants[m.current].ID, leaderboardSize)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d.", i+1),
			fmt.Sprint(r.Score),
			formatRunTime(r.Ticks),
			fmt.Sprint(r.Coins),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(delta int) {
	if n := len(m.variants); n > 0 {
		m.current = (m.current + delta + n) % n
		m.reload()
	}
}

// formatRunTime shows a run length in steps as m:ss at 60 steps per second.
func formatRunTime(ticks int) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		style := tabIdle
		if i == m.current {
			style = tabActive
		}
		tabs[i] = style.Render(v.Title)
	}

	var body string
	switch {
	case m.loadErr != nil:
		body = dimText.Render("Leaderboard unavailable: " + m.loadErr.Error())
	case len(m.runs) == 0:
		body = dimText.Italic(true).Padding(1, 2).Render("No runs recorded yet.\nFinish a run to get on the board!")
	default:
		s := summarize(m.runs)
		summary := dimText.Render(fmt.Sprintf("best %d  |  %d runs  |  longest %s  |  %d coins",
			s.best, s.runs, formatRunTime(s.longest), s.coins))
		body = lipgloss.JoinVertical(lipgloss.Left, summary, "", m.table.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardTitle.Render("LEADERBOARD")),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, tabs...)),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrame.Render(body)),
		"",
		dimText.Render(m.help.View(m.keys)),
	)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the leaderboard until the user leaves it.
// goBack is false when the user quit instead.
func RunScoreboard(store ScoreSource, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
