// Package tui provides the Bubble Tea front end for chromagate: the level
// menu, the game view, and SSH serving via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeExpiredMsg clears a completion notice once its time is up.
// seq identifies the notice so a newer one is not cleared early.
type noticeExpiredMsg struct {
	seq int
}

// noticeCmd returns a command that expires notice seq after d.
// A zero duration keeps notices until they are dismissed.
func noticeCmd(d time.Duration, seq int) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
