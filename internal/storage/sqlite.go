// Package storage provides a SQLite level library.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a level ID does not exist in the library.
var ErrNotFound = errors.New("storage: level not found")

// Store manages the SQLite database connection for the level library.
// It holds level texts only; play progress is never persisted.
type Store struct {
	db *sql.DB
}

// LevelRecord is one stored level.
type LevelRecord struct {
	ID        int64
	Name      string
	Body      string // raw level text, empty in listings
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_levels_name ON levels(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLevel stores a level text and returns its ID.
// IDs are stable and increase in insertion order, which is also play order.
func (s *Store) SaveLevel(name, body string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("storage: level name is empty")
	}

	result, err := s.db.Exec(
		"INSERT INTO levels (name, body) VALUES (?, ?)",
		name, body,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Levels lists every stored level in ID order, without bodies.
func (s *Store) Levels() ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, name, created_at
		 FROM levels
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Level returns one level including its body.
// Returns ErrNotFound if the ID does not exist.
func (s *Store) Level(id int64) (LevelRecord, error) {
	var r LevelRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, name, body, created_at FROM levels WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Name, &r.Body, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return LevelRecord{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return LevelRecord{}, fmt.Errorf("storage: cannot query level %d: %w", id, err)
	}

	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// DeleteLevel removes a level. Returns ErrNotFound if the ID does not exist.
func (s *Store) DeleteLevel(id int64) error {
	res, err := s.db.Exec("DELETE FROM levels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete level %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete level %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
