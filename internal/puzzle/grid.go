package puzzle

import "strings"

// Grid is the parsed board of a level, stored row by row.
// A Grid is read-only once built; the engine replaces it wholesale on level change.
//
// Rows are expected to have equal length but ragged input is kept as-is:
// columns past the end of a short row read as CellWall.
type Grid struct {
	rows [][]CellKind
	cols int // length of the widest row
}

// NewGrid builds a grid from rows of cell kinds. The rows are copied.
func NewGrid(rows [][]CellKind) Grid {
	g := Grid{rows: make([][]CellKind, len(rows))}
	for i, row := range rows {
		g.rows[i] = append([]CellKind(nil), row...)
		if len(row) > g.cols {
			g.cols = len(row)
		}
	}
	return g
}

// Parse converts level text into a Grid.
// Blank lines are dropped, each kept line is trimmed of carriage returns and
// surrounding whitespace, and every character maps through the symbol table.
// Unknown characters become CellPathway; Parse never fails.
func Parse(text string) Grid {
	var rows [][]CellKind
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}
		row := make([]CellKind, 0, len(line))
		for _, r := range line {
			kind, _ := KindForSymbol(r)
			row = append(row, kind)
		}
		rows = append(rows, row)
	}
	return NewGrid(rows)
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g.rows)
}

// Cols returns the width of the widest row.
func (g Grid) Cols() int {
	return g.cols
}

// RowLen returns the length of row r, or 0 if r is out of range.
func (g Grid) RowLen(r int) int {
	if r < 0 || r >= len(g.rows) {
		return 0
	}
	return len(g.rows[r])
}

// Empty reports whether the grid has no cells.
func (g Grid) Empty() bool {
	return len(g.rows) == 0 || g.cols == 0
}

// InBounds reports whether p addresses a cell that exists in its row.
func (g Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < len(g.rows) && p.Col >= 0 && p.Col < len(g.rows[p.Row])
}

// At returns the kind at p. Positions outside the grid, including the missing
// tail of a short row, read as CellWall.
func (g Grid) At(p Position) CellKind {
	if !g.InBounds(p) {
		return CellWall
	}
	return g.rows[p.Row][p.Col]
}

// Positions returns every position holding kind, in row-major order.
func (g Grid) Positions(kind CellKind) []Position {
	var out []Position
	for r, row := range g.rows {
		for c, k := range row {
			if k == kind {
				out = append(out, P(r, c))
			}
		}
	}
	return out
}

// Count returns the number of cells of the given kind.
func (g Grid) Count(kind CellKind) int {
	n := 0
	for _, row := range g.rows {
		for _, k := range row {
			if k == kind {
				n++
			}
		}
	}
	return n
}

// Ragged reports whether rows differ in length.
func (g Grid) Ragged() bool {
	for _, row := range g.rows {
		if len(row) != g.cols {
			return true
		}
	}
	return false
}

// Lines returns the grid re-serialized with canonical symbols, one string per row.
func (g Grid) Lines() []string {
	lines := make([]string, len(g.rows))
	for r, row := range g.rows {
		var sb strings.Builder
		sb.Grow(len(row))
		for _, k := range row {
			sb.WriteRune(k.Symbol())
		}
		lines[r] = sb.String()
	}
	return lines
}

// String returns the grid in level-file format.
func (g Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Equal returns true if two grids have the same shape and contents.
func (g Grid) Equal(other Grid) bool {
	if len(g.rows) != len(other.rows) {
		return false
	}
	for r := range g.rows {
		if len(g.rows[r]) != len(other.rows[r]) {
			return false
		}
		for c := range g.rows[r] {
			if g.rows[r][c] != other.rows[r][c] {
				return false
			}
		}
	}
	return true
}

// FindStart returns the first CellStart in row-major order, or (0,0) when
// the grid declares no start.
func FindStart(g Grid) Position {
	for r, row := range g.rows {
		for c, k := range row {
			if k == CellStart {
				return P(r, c)
			}
		}
	}
	return P(0, 0)
}
