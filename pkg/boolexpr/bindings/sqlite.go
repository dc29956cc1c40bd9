package bindings

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists binding sets to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite binding store.
// The path should be a file path (e.g., "./bindings.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// ":memory:" databases are per-connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS binding_sets (
			name TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			size INTEGER NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(name string, env boolexpr.Environment) error {
	if name == "" {
		return ErrEmptyName
	}
	data, err := encode(env)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err = s.db.Exec(`
		INSERT INTO binding_sets (name, version, updated_at, size, data)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			version = binding_sets.version + 1,
			updated_at = excluded.updated_at,
			size = excluded.size,
			data = excluded.data
	`, name, time.Now().UTC().Format(time.RFC3339Nano), env.Len(), data)
	if err != nil {
		return fmt.Errorf("save binding set: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(name string) (boolexpr.Environment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return boolexpr.Environment{}, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM binding_sets WHERE name = ?
	`, name).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return boolexpr.Environment{}, ErrNotFound
	}
	if err != nil {
		return boolexpr.Environment{}, fmt.Errorf("load binding set: %w", err)
	}
	return decode(data)
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, version, updated_at, size
		FROM binding_sets
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list binding sets: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		var updatedAt string
		if err := rows.Scan(&info.Name, &info.Version, &updatedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("scan binding set info: %w", err)
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate binding sets: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM binding_sets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete binding set: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
