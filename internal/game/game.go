// Package game adapts the puzzle engine to the terminal platform. It turns
// semantic actions and mouse clicks into engine calls and draws the current
// state into a core.Screen.
package game

import (
	"github.com/vovakirdan/chromagate/internal/core"
	"github.com/vovakirdan/chromagate/internal/puzzle"
)

// Notices shown when an end cell is reached.
const (
	NoticeLevelComplete = "Level completed!"
	NoticeGameComplete  = "All levels completed!"
)

const hudHeight = 4

// Game wraps one engine for one player.
type Game struct {
	engine *puzzle.Engine
	cfg    core.RuntimeConfig

	notice string
	status string

	// Layout, recomputed on every Render and Resize.
	board    core.Rect
	tooSmall bool
}

// New creates a game over levels. With no levels the game only renders an
// empty state.
func New(levels []puzzle.Level, cfg core.RuntimeConfig) *Game {
	if cfg.CellWidth < 1 {
		cfg.CellWidth = 1
	}
	g := &Game{
		engine: puzzle.NewEngine(levels, puzzle.WithRandomSource(puzzle.NewRandomSource(cfg.Seed))),
		cfg:    cfg,
	}
	g.layout()
	return g
}

// Engine returns the underlying engine.
func (g *Game) Engine() *puzzle.Engine {
	return g.engine
}

// Ready reports whether a level is loaded.
func (g *Game) Ready() bool {
	return g.engine.Ready()
}

// Resize updates the screen size used for layout and click mapping.
func (g *Game) Resize(width, height int) {
	g.cfg.ScreenW = width
	g.cfg.ScreenH = height
	g.layout()
}

// Handle applies a semantic action. Actions with no gameplay meaning are ignored.
func (g *Game) Handle(a core.Action) puzzle.Outcome {
	// Playing on dismisses a pending notice.
	if a.IsMove() {
		g.notice = ""
	}
	switch a {
	case core.ActionUp:
		return g.apply(puzzle.Move{Direction: puzzle.DirUp})
	case core.ActionDown:
		return g.apply(puzzle.Move{Direction: puzzle.DirDown})
	case core.ActionLeft:
		return g.apply(puzzle.Move{Direction: puzzle.DirLeft})
	case core.ActionRight:
		return g.apply(puzzle.Move{Direction: puzzle.DirRight})
	case core.ActionNextLevel:
		return g.step(1)
	case core.ActionPrevLevel:
		return g.step(-1)
	}
	return puzzle.Outcome{Kind: puzzle.OutcomeIgnored}
}

// Click moves toward the board cell under the screen position (x, y).
// Clicks outside the board are ignored.
func (g *Game) Click(x, y int) puzzle.Outcome {
	p, ok := g.CellAt(x, y)
	if !ok {
		return puzzle.Outcome{Kind: puzzle.OutcomeIgnored}
	}
	return g.apply(puzzle.Click{Position: p})
}

// CellAt maps a screen position to a board cell.
func (g *Game) CellAt(x, y int) (puzzle.Position, bool) {
	if !g.engine.Ready() || g.tooSmall || !g.board.Contains(x, y) {
		return puzzle.Position{}, false
	}
	return puzzle.P(y-g.board.Y, (x-g.board.X)/g.cfg.CellWidth), true
}

// Select jumps to the level with the given ID.
func (g *Game) Select(id int) puzzle.Outcome {
	return g.apply(puzzle.SelectLevel{ID: id})
}

// Notice returns the pending completion message, if any.
func (g *Game) Notice() string {
	return g.notice
}

// DismissNotice clears the completion message.
func (g *Game) DismissNotice() {
	g.notice = ""
}

func (g *Game) step(delta int) puzzle.Outcome {
	infos := g.engine.Levels()
	next := g.engine.LevelIndex() + delta
	if next < 0 || next >= len(infos) {
		return puzzle.Outcome{Kind: puzzle.OutcomeIgnored}
	}
	return g.apply(puzzle.SelectLevel{ID: infos[next].ID})
}

func (g *Game) apply(cmd puzzle.Command) puzzle.Outcome {
	grid := g.engine.Grid()
	out := g.engine.Apply(cmd)

	switch out.Kind {
	case puzzle.OutcomeLevelComplete:
		g.notice = NoticeLevelComplete
	case puzzle.OutcomeGameComplete:
		g.notice = NoticeGameComplete
	case puzzle.OutcomeLevelSelected:
		g.notice = ""
	}
	if out.Kind != puzzle.OutcomeIgnored {
		g.status = describe(out, grid, g.engine.Color())
	}
	if out.Kind == puzzle.OutcomeLevelComplete || out.Kind == puzzle.OutcomeLevelSelected {
		g.layout()
	}
	return out
}

// layout places the board below the HUD, two columns in from the left.
func (g *Game) layout() {
	grid := g.engine.Grid()
	w := grid.Cols() * g.cfg.CellWidth
	h := grid.Rows()
	g.board = core.NewRect(2, hudHeight+1, w, h)
	g.tooSmall = g.board.Right() > g.cfg.ScreenW || g.board.Bottom()+2 > g.cfg.ScreenH
}
