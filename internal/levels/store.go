package levels

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vovakirdan/chromagate/internal/storage"
)

// StoreSource reads levels from the sqlite level library.
// Level IDs are the library's row IDs.
type StoreSource struct {
	store *storage.Store
	path  string
}

// NewStoreSource creates a source over an open store. path names it in logs.
func NewStoreSource(store *storage.Store, path string) *StoreSource {
	return &StoreSource{store: store, path: path}
}

func (s *StoreSource) String() string {
	return "sqlite:" + s.path
}

// Entries implements Source.
func (s *StoreSource) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs, err := s.store.Levels()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(recs))
	for i, r := range recs {
		entries[i] = Entry{
			ID:   int(r.ID),
			Name: r.Name,
			Key:  strconv.FormatInt(r.ID, 10),
		}
	}
	return entries, nil
}

// Read implements Source.
func (s *StoreSource) Read(ctx context.Context, e Entry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := strconv.ParseInt(e.Key, 10, 64)
	if err != nil {
		return "", fmt.Errorf("levels: bad library key %q: %w", e.Key, err)
	}
	rec, err := s.store.Level(id)
	if err != nil {
		return "", err
	}
	return rec.Body, nil
}
