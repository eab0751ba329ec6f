package levels

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chromagate/internal/puzzle"
	"github.com/vovakirdan/chromagate/internal/storage"
)

// Load reads every entry of src in order and parses it into a level.
//
// A listing failure is returned as an error. Entries that cannot be read,
// entries with no cells and entries repeating an earlier ID are logged and
// skipped; the rest are kept. When nothing is left Load returns an empty slice and ErrNoLevels.
func Load(ctx context.Context, src Source, logger *log.Logger) ([]puzzle.Level, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	entries, err := src.Entries(ctx)
	if err != nil {
		return []puzzle.Level{}, fmt.Errorf("levels: listing %s: %w", src, err)
	}

	levels := make([]puzzle.Level, 0, len(entries))
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return levels, err
		}
		if seen[e.ID] {
			logger.Warn("skipping level with duplicate id", "source", src, "entry", e.Key, "id", e.ID)
			continue
		}

		text, err := src.Read(ctx, e)
		if err != nil {
			logger.Warn("skipping level", "source", src, "entry", e.Key, "err", err)
			continue
		}

		lvl := puzzle.NewLevel(e.ID, e.Name, text)
		if lvl.Grid.Empty() {
			logger.Warn("skipping empty level", "source", src, "entry", e.Key, "id", e.ID)
			continue
		}

		seen[e.ID] = true
		levels = append(levels, lvl)
		logger.Debug("loaded level", "source", src, "id", e.ID, "name", e.Name)
	}

	if len(levels) == 0 {
		return levels, ErrNoLevels
	}
	return levels, nil
}

// Open resolves a source spec: "builtin", "sqlite" (the library at dbPath)
// or a directory path. The returned close function releases the source.
func Open(spec, dbPath string) (Source, func() error, error) {
	noop := func() error { return nil }

	switch spec {
	case "", SourceBuiltin:
		return Builtin(), noop, nil
	case SourceSQLite:
		store, err := storage.Open(dbPath)
		if err != nil {
			return nil, noop, err
		}
		return NewStoreSource(store, dbPath), store.Close, nil
	}

	dir, err := storage.ExpandPath(spec)
	if err != nil {
		return nil, noop, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, noop, fmt.Errorf("levels: level directory: %w", err)
	}
	if !info.IsDir() {
		return nil, noop, fmt.Errorf("levels: %s is not a directory", dir)
	}
	return Dir(dir), noop, nil
}
