// Package settings persists small scalar values (the rollover watermark,
// remote sync bookkeeping) in a key-value table, separate from the per-date
// plan records.
package settings

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/datekey"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Open creates the database and settings table if needed.
func (s *Store) Open() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open settings database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return fmt.Errorf("failed to create settings table: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored value for key, or "" when unset.
func (s *Store) Get(key string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("settings store not opened")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("settings store not opened")
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetDate reads a value as a DateKey. An unset or unparsable value is
// reported as the zero key, not an error.
func (s *Store) GetDate(key string) (datekey.Key, error) {
	value, err := s.Get(key)
	if err != nil {
		return datekey.Key{}, err
	}
	if value == "" {
		return datekey.Key{}, nil
	}
	date, err := datekey.Parse(value)
	if err != nil {
		return datekey.Key{}, nil
	}
	return date, nil
}

func (s *Store) SetDate(key string, date datekey.Key) error {
	return s.Set(key, date.String())
}

// LastRolloverDate and SetLastRolloverDate satisfy rollover.Watermark.

func (s *Store) LastRolloverDate() (datekey.Key, error) {
	return s.GetDate(constants.SettingRolloverDate)
}

func (s *Store) SetLastRolloverDate(date datekey.Key) error {
	return s.SetDate(constants.SettingRolloverDate, date)
}
