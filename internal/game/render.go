package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/chromagate/internal/core"
	"github.com/vovakirdan/chromagate/internal/puzzle"
)

// glyph is how one cell kind is drawn.
type glyph struct {
	r     rune
	color core.Color
	fill  bool // repeat r across the whole cell width
}

var glyphs = map[puzzle.CellKind]glyph{
	puzzle.CellPathway:  {'·', core.ColorGray, false},
	puzzle.CellStart:    {'S', core.ColorGreen, false},
	puzzle.CellEnd:      {'E', core.ColorYellow, false},
	puzzle.CellWall:     {'█', core.ColorWhite, true},
	puzzle.CellRedZone:  {'▒', core.ColorRed, true},
	puzzle.CellBlueZone: {'▒', core.ColorBlue, true},
	puzzle.CellSwitch:   {'T', core.ColorMagenta, false},
	puzzle.CellPortalA:  {'@', core.ColorCyan, false},
	puzzle.CellPortalB:  {'O', core.ColorCyan, false},
}

const playerRune = '●'

// PlayerColor maps the player's color to a screen color.
func PlayerColor(c puzzle.Color) core.Color {
	if c == puzzle.ColorBlue {
		return core.ColorBrightBlue
	}
	return core.ColorBrightRed
}

// Render draws the HUD with the status line, the board, the side panel and
// any notice.
// The screen is pre-cleared before this call.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() != g.cfg.ScreenW || dst.Height() != g.cfg.ScreenH {
		g.Resize(dst.Width(), dst.Height())
	}

	g.renderHUD(dst)

	if !g.engine.Ready() {
		renderOverlay(dst, "No levels loaded", "Check the level source and restart")
		return
	}
	if g.tooSmall {
		renderOverlay(dst, "Terminal too small", fmt.Sprintf("Need %dx%d", g.board.Right()+2, g.board.Bottom()+2))
		return
	}

	g.renderBoard(dst)
	g.renderPanel(dst)

	if g.notice != "" {
		renderOverlay(dst, g.notice, "Keep playing or press b for the level menu")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	snap := g.engine.Snapshot()

	hud := " chromagate"
	if g.engine.Ready() {
		hud = fmt.Sprintf(" chromagate | Level %d/%d: %s | Color: ", snap.LevelIndex+1, snap.LevelCount, snap.LevelName)
	}
	dst.DrawTextWithColor(0, 0, hud, core.ColorCyan)
	if g.engine.Ready() {
		x := len([]rune(hud))
		dst.SetWithColor(x, 0, playerRune, PlayerColor(snap.Color))
		dst.DrawTextWithColor(x+2, 0, strings.ToUpper(snap.Color.String()), PlayerColor(snap.Color))
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
	dst.DrawTextWithColor(1, 2, g.status, core.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', core.ColorGray)
}

func (g *Game) renderBoard(dst *core.Screen) {
	grid := g.engine.Grid()
	pos := g.engine.Position()
	cw := g.cfg.CellWidth

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.RowLen(row); col++ {
			x := g.board.X + col*cw
			y := g.board.Y + row
			p := puzzle.P(row, col)

			if p == pos {
				dst.SetWithColor(x, y, playerRune, PlayerColor(g.engine.Color()))
				continue
			}
			gl := glyphs[grid.At(p)]
			dst.SetWithColor(x, y, gl.r, gl.color)
			if gl.fill {
				for i := 1; i < cw; i++ {
					dst.SetWithColor(x+i, y, gl.r, gl.color)
				}
			}
		}
	}
}

// renderPanel draws the color indicator, the level list and the legend to the
// right of the board when there is room.
func (g *Game) renderPanel(dst *core.Screen) {
	x := g.board.Right() + 4
	if x+24 > dst.Width() {
		return
	}
	y := g.board.Y

	color := g.engine.Color()
	dst.DrawText(x, y, "You:")
	dst.SetWithColor(x+5, y, playerRune, PlayerColor(color))
	dst.DrawTextWithColor(x+7, y, color.String(), PlayerColor(color))
	y += 2

	dst.DrawTextWithColor(x, y, "Levels", core.ColorCyan)
	y++
	current := g.engine.LevelIndex()
	for i, info := range g.engine.Levels() {
		line := fmt.Sprintf("  %d %s", info.ID, info.Name)
		c := core.ColorDefault
		if i == current {
			line = fmt.Sprintf("> %d %s", info.ID, info.Name)
			c = core.ColorYellow
		}
		dst.DrawTextWithColor(x, y, line, c)
		y++
	}

	if !g.cfg.ShowLegend {
		return
	}
	y++
	dst.DrawTextWithColor(x, y, "Legend", core.ColorCyan)
	y++
	for _, k := range puzzle.AllKinds() {
		gl := glyphs[k]
		dst.SetWithColor(x, y, gl.r, gl.color)
		dst.DrawText(x+2, y, legendLabel(k))
		y++
	}
}

func legendLabel(k puzzle.CellKind) string {
	switch k {
	case puzzle.CellPathway:
		return "path"
	case puzzle.CellStart:
		return "start"
	case puzzle.CellEnd:
		return "exit"
	case puzzle.CellWall:
		return "wall"
	case puzzle.CellRedZone:
		return "red only"
	case puzzle.CellBlueZone:
		return "blue only"
	case puzzle.CellSwitch:
		return "color switch"
	case puzzle.CellPortalA, puzzle.CellPortalB:
		return "portal (" + string(k.Symbol()) + ")"
	}
	return k.String()
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect((dst.Width()-maxLen-4)/2, (dst.Height()-5)/2, maxLen+4, 5)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		dst.DrawHLine(box.X+1, y, box.W-2, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorGray)
}

// describe turns an outcome into the status line. grid is the grid the move
// was evaluated on.
func describe(out puzzle.Outcome, grid puzzle.Grid, color puzzle.Color) string {
	switch out.Kind {
	case puzzle.OutcomeRejected:
		switch grid.At(out.Target) {
		case puzzle.CellRedZone:
			return "Only red may enter the red zone"
		case puzzle.CellBlueZone:
			return "Only blue may enter the blue zone"
		default:
			return "Blocked by a wall"
		}
	case puzzle.OutcomeEntered:
		return "Moved to " + out.To.String()
	case puzzle.OutcomeToggled:
		return "Switched to " + color.String()
	case puzzle.OutcomeTeleported:
		return "Teleported to " + out.To.String()
	case puzzle.OutcomeLevelComplete:
		return fmt.Sprintf("Level %d complete, now playing level %d", out.Level, out.NextLevel)
	case puzzle.OutcomeGameComplete:
		return "Final level complete"
	case puzzle.OutcomeLevelSelected:
		return fmt.Sprintf("Selected level %d", out.NextLevel)
	}
	return ""
}
