package web

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/chromagate/internal/puzzle"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 16
)

// session is one websocket connection with its own engine. Commands are
// applied on the read goroutine; frames go out through the write goroutine.
type session struct {
	id     string
	conn   *websocket.Conn
	engine *puzzle.Engine
	send   chan ServerFrame
	logger *log.Logger
}

func newSession(id string, conn *websocket.Conn, levels []puzzle.Level, rng puzzle.RandomSource, logger *log.Logger) *session {
	s := &session{
		id:     id,
		conn:   conn,
		engine: puzzle.NewEngine(levels, puzzle.WithRandomSource(rng)),
		send:   make(chan ServerFrame, sendBuffer),
		logger: logger.With("conn", id),
	}
	s.engine.Subscribe(func(snap puzzle.Snapshot, out puzzle.Outcome) {
		if out.Completed() {
			s.logger.Info("level completed", "level", out.Level, "next", snap.LevelID, "kind", out.Kind)
		}
	})
	return s
}

// run serves the connection until the client goes away.
func (s *session) run() {
	done := make(chan struct{})
	go func() {
		s.writeLoop()
		close(done)
	}()

	s.send <- snapshotFrame(s.engine.Snapshot(), nil)
	s.readLoop()

	close(s.send)
	<-done
}

func (s *session) readLoop() {
	s.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // deadline errors surface on the next read
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read failed", "error", err)
			}
			return
		}
		s.send <- s.handle(data)
	}
}

// handle decodes one client frame, applies it and returns the reply.
func (s *session) handle(data []byte) ServerFrame {
	var f ClientFrame
	if err := json.Unmarshal(data, &f); err != nil {
		s.logger.Debug("undecodable frame", "error", err)
		return errorFrame("invalid frame: " + err.Error())
	}
	cmd, err := f.Command()
	if err != nil {
		s.logger.Debug("rejected frame", "type", f.Type, "error", err)
		return errorFrame(err.Error())
	}

	out := s.engine.Apply(cmd)
	s.logger.Debug("command applied", "type", f.Type, "outcome", out.Kind)
	return snapshotFrame(s.engine.Snapshot(), &out)
}

func (s *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-s.send:
			//nolint:errcheck // a failed deadline shows up as a write error
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // best-effort close frame
				s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteJSON(frame); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					s.logger.Warn("write failed", "error", err)
				}
				s.drain()
				return
			}
		case <-ticker.C:
			//nolint:errcheck // a failed deadline shows up as a write error
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.drain()
				return
			}
		}
	}
}

// drain discards frames after a write failure so the read loop never blocks.
func (s *session) drain() {
	//nolint:errcheck // unblocks the read loop
	s.conn.Close()
	for range s.send {
	}
}
