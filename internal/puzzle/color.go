package puzzle

// Color is the player's binary color state.
type Color uint8

const (
	ColorRed Color = iota
	ColorBlue
)

// String returns the string representation of a color.
func (c Color) String() string {
	if c == ColorBlue {
		return "blue"
	}
	return "red"
}

// Toggle returns the other color.
func (c Color) Toggle() Color {
	if c == ColorRed {
		return ColorBlue
	}
	return ColorRed
}

// Admits reports whether a player of color c may enter a cell of kind k
// as far as color gating is concerned.
func (c Color) Admits(k CellKind) bool {
	switch k {
	case CellRedZone:
		return c == ColorRed
	case CellBlueZone:
		return c == ColorBlue
	default:
		return true
	}
}
