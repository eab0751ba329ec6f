package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chromagate/internal/core"
	"github.com/vovakirdan/chromagate/internal/puzzle"
)

// Menu layout constants
const (
	menuChrome   = 8 // title, table header and border, help bar
	nameMinWidth = 12
	nameMaxWidth = 28
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	tableBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels   []puzzle.Level
	config   core.RuntimeConfig
	table    table.Model
	help     help.Model
	keys     MenuKeyMap
	quitting bool
	selected *puzzle.LevelInfo // Set when user picks a level
}

// NewMenuModel creates a level picker over levels.
func NewMenuModel(levels []puzzle.Level, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		levels: levels,
		config: cfg,
		help:   help.New(),
		keys:   DefaultMenuKeyMap(),
	}
	m.help.Width = cfg.ScreenW
	m.table = m.createTable()
	return m
}

// createTable builds the level table sized to the current screen.
func (m MenuModel) createTable() table.Model {
	nameWidth := core.Clamp(m.config.ScreenW-44, nameMinWidth, nameMaxWidth)
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: nameWidth},
		{Title: "Size", Width: 7},
		{Title: "Notes", Width: 22},
	}

	rows := make([]table.Row, len(m.levels))
	for i, lvl := range m.levels {
		rows[i] = table.Row{
			strconv.Itoa(lvl.ID),
			lvl.Name,
			fmt.Sprintf("%dx%d", lvl.Grid.Rows(), lvl.Grid.Cols()),
			levelNotes(lvl.Grid),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.config.ScreenH-menuChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// levelNotes summarizes the mechanics a level uses and any content problems.
func levelNotes(g puzzle.Grid) string {
	var notes []string
	if g.Count(puzzle.CellRedZone)+g.Count(puzzle.CellBlueZone) > 0 {
		notes = append(notes, "gates")
	}
	if g.Count(puzzle.CellSwitch) > 0 {
		notes = append(notes, "switch")
	}
	if g.Count(puzzle.CellPortalA)+g.Count(puzzle.CellPortalB) > 0 {
		notes = append(notes, "portals")
	}
	if g.Count(puzzle.CellEnd) == 0 {
		notes = append(notes, "no exit")
	}
	return strings.Join(notes, ", ")
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.levels) > 0 {
				lvl := m.levels[m.table.Cursor()]
				m.selected = &puzzle.LevelInfo{ID: lvl.ID, Name: lvl.Name}
				return m, tea.Quit // Exit menu to start game
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C H R O M A G A T E", m.config.ScreenW)))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(emptyStyle.Render(centerText("No levels loaded", m.config.ScreenW)))
		b.WriteString("\n")
	} else {
		b.WriteString(tableBoxStyle.Render(m.table.View()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *puzzle.LevelInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID int
	Config  core.RuntimeConfig
	Quit    bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(levels []puzzle.Level, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(levels, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	if m.Selected() == nil {
		result.Quit = true
		return result, nil
	}
	result.LevelID = m.Selected().ID
	return result, nil
}
