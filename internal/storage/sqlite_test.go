package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id1, err := store.SaveLevel("Corridor", "S..E")
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	id2, err := store.SaveLevel("Switchback", "ST\nBE")
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("IDs should increase, got %d then %d", id1, id2)
	}

	rec, err := store.Level(id2)
	if err != nil {
		t.Fatalf("Level() failed: %v", err)
	}
	if rec.Name != "Switchback" || rec.Body != "ST\nBE" {
		t.Errorf("Level() = %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreLevelsOrder(t *testing.T) {
	store := openTestStore(t)

	names := []string{"one", "two", "three"}
	for _, n := range names {
		if _, err := store.SaveLevel(n, "S.E"); err != nil {
			t.Fatalf("SaveLevel(%q) failed: %v", n, err)
		}
	}

	recs, err := store.Levels()
	if err != nil {
		t.Fatalf("Levels() failed: %v", err)
	}
	if len(recs) != len(names) {
		t.Fatalf("Levels() returned %d records, expected %d", len(recs), len(names))
	}
	for i, r := range recs {
		if r.Name != names[i] {
			t.Errorf("recs[%d].Name = %q, expected %q", i, r.Name, names[i])
		}
		if r.Body != "" {
			t.Errorf("listing should not carry bodies, got %q", r.Body)
		}
	}
}

func TestStoreEmptyName(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLevel("  ", "S.E"); err == nil {
		t.Error("SaveLevel() with blank name should fail")
	}
}

func TestStoreNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Level(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Level(42) error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteLevel(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteLevel(42) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreDeleteLevel(t *testing.T) {
	store := openTestStore(t)

	keep, _ := store.SaveLevel("keep", "S.E")
	drop, _ := store.SaveLevel("drop", "S#E")

	if err := store.DeleteLevel(drop); err != nil {
		t.Fatalf("DeleteLevel() failed: %v", err)
	}

	recs, err := store.Levels()
	if err != nil {
		t.Fatalf("Levels() failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != keep {
		t.Errorf("Levels() after delete = %+v", recs)
	}

	// IDs are not reused
	next, _ := store.SaveLevel("next", "S.E")
	if next == drop {
		t.Errorf("deleted ID %d was reused", drop)
	}
}

func TestStoreReopenKeepsLevels(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lib.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, _ := store.SaveLevel("persisted", "S..\n..E")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	rec, err := store.Level(id)
	if err != nil {
		t.Fatalf("Level() after reopen failed: %v", err)
	}
	if rec.Body != "S..\n..E" {
		t.Errorf("Body = %q", rec.Body)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	store, err := Open("~/.chromagate/levels.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	expectedPath := filepath.Join(tmpDir, ".chromagate", "levels.db")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Errorf("Database not created at expected path: %s", expectedPath)
	}
}
