package core

// RuntimeConfig is passed to a game when it is created or resized.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	Seed       int64 // Portal RNG seed, 0 means time-based
	CellWidth  int   // Characters per board cell
	ShowLegend bool  // Draw the cell legend beside the board
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		CellWidth:  2,
		ShowLegend: true,
	}
}
