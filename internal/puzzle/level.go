package puzzle

import "fmt"

// Level is one entry of the level sequence.
type Level struct {
	ID   int
	Name string
	Grid Grid
}

// NewLevel parses text into a level.
func NewLevel(id int, name, text string) Level {
	if name == "" {
		name = fmt.Sprintf("Level %d", id)
	}
	return Level{ID: id, Name: name, Grid: Parse(text)}
}

// LevelInfo is the selection-menu view of a level.
type LevelInfo struct {
	ID   int
	Name string
}

// indexOf returns the sequence index of the level with the given ID, or -1.
func indexOf(levels []Level, id int) int {
	for i, lvl := range levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}
