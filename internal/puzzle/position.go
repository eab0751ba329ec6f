package puzzle

import (
	"fmt"
	"strings"
)

// Position is a (row, column) pair. Row 0 is the top of the grid.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is one of the four directional steps.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the (dRow, dCol) offset of one step in this direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// ParseDirection converts a name ("up", "w", "left", ...) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "up", "w":
		return DirUp, true
	case "down", "s":
		return DirDown, true
	case "left", "a":
		return DirLeft, true
	case "right", "d":
		return DirRight, true
	default:
		return DirUp, false
	}
}
