package web

import (
	"fmt"

	"github.com/vovakirdan/chromagate/internal/puzzle"
)

// Frame types exchanged over the websocket.
const (
	FrameMove     = "move"
	FrameClick    = "click"
	FrameSelect   = "select"
	FrameSnapshot = "snapshot"
	FrameError    = "error"
)

// ClientFrame is one command sent by a browser client.
//
//	{"type":"move","direction":"up"}
//	{"type":"click","row":1,"col":2}
//	{"type":"select","level":2}
type ClientFrame struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
	Row       int    `json:"row,omitempty"`
	Col       int    `json:"col,omitempty"`
	Level     int    `json:"level,omitempty"`
}

// Command converts the frame into an engine command.
func (f ClientFrame) Command() (puzzle.Command, error) {
	switch f.Type {
	case FrameMove:
		d, ok := puzzle.ParseDirection(f.Direction)
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", f.Direction)
		}
		return puzzle.Move{Direction: d}, nil
	case FrameClick:
		return puzzle.Click{Position: puzzle.P(f.Row, f.Col)}, nil
	case FrameSelect:
		return puzzle.SelectLevel{ID: f.Level}, nil
	case "":
		return nil, fmt.Errorf("frame has no type")
	}
	return nil, fmt.Errorf("unknown frame type %q", f.Type)
}

// Cell is a grid coordinate on the wire.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// OutcomeFrame describes what the last command did.
type OutcomeFrame struct {
	Kind      string `json:"kind"`
	From      Cell   `json:"from"`
	To        Cell   `json:"to"`
	Level     int    `json:"level"`
	NextLevel int    `json:"nextLevel,omitempty"`
}

// StateFrame is the engine state after a command.
type StateFrame struct {
	Level      int      `json:"level"`
	Name       string   `json:"name"`
	LevelIndex int      `json:"levelIndex"`
	LevelCount int      `json:"levelCount"`
	Grid       []string `json:"grid"`
	Row        int      `json:"row"`
	Col        int      `json:"col"`
	Color      string   `json:"color"`
}

// ServerFrame is one message sent to the client.
type ServerFrame struct {
	Type    string        `json:"type"`
	Outcome *OutcomeFrame `json:"outcome,omitempty"`
	State   *StateFrame   `json:"state,omitempty"`
	Message string        `json:"message,omitempty"`
}

func snapshotFrame(snap puzzle.Snapshot, out *puzzle.Outcome) ServerFrame {
	grid := snap.Grid.Lines()
	if grid == nil {
		grid = []string{}
	}
	f := ServerFrame{
		Type: FrameSnapshot,
		State: &StateFrame{
			Level:      snap.LevelID,
			Name:       snap.LevelName,
			LevelIndex: snap.LevelIndex,
			LevelCount: snap.LevelCount,
			Grid:       grid,
			Row:        snap.Position.Row,
			Col:        snap.Position.Col,
			Color:      snap.Color.String(),
		},
	}
	if out != nil {
		f.Outcome = &OutcomeFrame{
			Kind:      string(out.Kind),
			From:      Cell{out.From.Row, out.From.Col},
			To:        Cell{out.To.Row, out.To.Col},
			Level:     out.Level,
			NextLevel: out.NextLevel,
		}
	}
	return f
}

func errorFrame(msg string) ServerFrame {
	return ServerFrame{Type: FrameError, Message: msg}
}
