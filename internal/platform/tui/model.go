package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chromagate/internal/core"
	"github.com/vovakirdan/chromagate/internal/game"
	"github.com/vovakirdan/chromagate/internal/puzzle"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameOptions tune a game session.
type GameOptions struct {
	// StartLevel is the ID of the first level to play. Zero plays the
	// sequence from the beginning.
	StartLevel int

	// NoticeDuration is how long a completion notice stays on screen.
	// Zero keeps it until dismissed.
	NoticeDuration time.Duration

	// Standalone makes Back quit the program instead of only flagging it.
	// RunGame sets it; the SSH session leaves it off and swaps models.
	Standalone bool
}

// GameModel is the Bubble Tea model for playing one level sequence.
type GameModel struct {
	game   *game.Game
	screen *core.Screen
	config core.RuntimeConfig
	opts   GameOptions
	keys   GameKeyMap
	help   help.Model

	noticeSeq  int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model over levels.
func NewGameModel(levels []puzzle.Level, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	g := game.New(levels, cfg)
	if opts.StartLevel != 0 {
		g.Select(opts.StartLevel)
	}

	m := GameModel{
		game:   g,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   opts,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	m.resize(cfg.ScreenW, cfg.ScreenH)
	return m
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.afterOutcome(m.game.Click(msg.X, msg.Y))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.resize(msg.Width, msg.Height)
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.game.DismissNotice()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.backToMenu = true
		if m.opts.Standalone {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionConfirm:
		m.game.DismissNotice()
		return m, nil
	}

	return m.afterOutcome(m.game.Handle(action))
}

// afterOutcome schedules expiry of a fresh completion notice.
func (m GameModel) afterOutcome(out puzzle.Outcome) (tea.Model, tea.Cmd) {
	if !out.Completed() {
		return m, nil
	}
	m.noticeSeq++
	return m, noticeCmd(m.opts.NoticeDuration, m.noticeSeq)
}

// resize gives the game everything above the help bar.
func (m *GameModel) resize(width, height int) {
	h := max(height-m.helpHeight(), 1)
	m.screen.Resize(width, h)
	m.game.Resize(width, h)
}

func (m GameModel) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 0
	for _, col := range m.keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return rows
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the wrapped game.
func (m GameModel) Game() *game.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config (may have been updated by resize).
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}

// GameResult holds the result of running a game.
type GameResult struct {
	Config     core.RuntimeConfig
	BackToMenu bool
	Quit       bool
}

// RunGame runs the game until the player quits or asks for the level menu.
func RunGame(levels []puzzle.Level, cfg core.RuntimeConfig, opts GameOptions) (GameResult, error) {
	opts.Standalone = true
	model := NewGameModel(levels, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameResult{Config: cfg}, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return GameResult{Config: cfg, Quit: true}, nil
	}

	return GameResult{
		Config:     m.Config(),
		BackToMenu: m.BackToMenu(),
		Quit:       m.IsQuitting() || !m.BackToMenu(),
	}, nil
}
