package store

import (
	"database/sql"
	"errors"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store over a single-file SQLite database.
// Individual key writes are serialized by the database; the store gives no
// ordering across multi-key operations.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the preferences database at path. Caller must call
// Close when done. The schema must already be applied (see store/migrate).
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// GetString returns the value for key, or def when absent.
func (s *SQLiteStore) GetString(key, def string) string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return def
	}
	return value
}

// SetString writes key=value, replacing any previous value.
func (s *SQLiteStore) SetString(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetBool returns the boolean value for key, or def when absent or not a boolean.
func (s *SQLiteStore) GetBool(key string, def bool) bool {
	raw := s.GetString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// SetBool writes key=value.
func (s *SQLiteStore) SetBool(key string, value bool) error {
	return s.SetString(key, strconv.FormatBool(value))
}

// GetInt returns the integer value for key, or def when absent or not an integer.
func (s *SQLiteStore) GetInt(key string, def int) int {
	raw := s.GetString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// SetInt writes key=value.
func (s *SQLiteStore) SetInt(key string, value int) error {
	return s.SetString(key, strconv.Itoa(value))
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *SQLiteStore) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return errors.New("store: already closed")
	}
	err := s.db.Close()
	s.db = nil
	return err
}
