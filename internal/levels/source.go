// Package levels finds level texts and turns them into a playable sequence.
// A Source only lists and reads raw texts; Load parses them with the puzzle
// package and decides what to keep.
package levels

import (
	"context"
	"errors"
)

// Source names understood by Open. Anything else is a directory path.
const (
	SourceBuiltin = "builtin"
	SourceSQLite  = "sqlite"
)

// ErrNoLevels is returned by Load when no level could be loaded.
var ErrNoLevels = errors.New("levels: no levels loaded")

// Entry is one declared level of a source.
type Entry struct {
	ID   int
	Name string
	Key  string // source-specific locator: a file name or a library row ID
}

// Source lists and reads level texts.
type Source interface {
	// Entries lists the declared levels in play order.
	Entries(ctx context.Context) ([]Entry, error)
	// Read returns the raw text of one entry.
	Read(ctx context.Context, e Entry) (string, error)
	// String names the source in logs.
	String() string
}
