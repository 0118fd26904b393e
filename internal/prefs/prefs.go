// Package prefs persists client preferences in a small SQLite database.
// Preferences are read once when the client starts and written whenever
// the user changes one.
package prefs

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/raysh454/caselookup/internal/logging"
)

//go:embed schema.sql
var schemaFS embed.FS

const keyDarkMode = "dark_mode"

// DefaultPath is used when no path is configured.
const DefaultPath = "~/.caselookup/prefs.db"

// Preferences is the persisted client state.
type Preferences struct {
	DarkMode  bool
	UpdatedAt time.Time
}

// Store reads and writes Preferences.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the database at path. A leading "~" is
// expanded to the user's home directory.
func Open(path string, logger logging.Logger) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	path, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding prefs path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure prefs dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening prefs database: %w", err)
	}
	s, err := NewStore(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore runs the schema against db and returns a Store that owns it.
func NewStore(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Store{db: db, logger: logger.With(logging.Field{Key: "component", Value: "prefs"})}, nil
}

// Load returns the stored preferences, or the zero Preferences when nothing
// was saved yet.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	var (
		value   string
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM preferences WHERE key = ?`, keyDarkMode).
		Scan(&value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}

	dark, err := strconv.ParseBool(value)
	if err != nil {
		s.logger.Warn("ignoring malformed dark mode value", logging.Field{Key: "value", Value: value})
		dark = false
	}
	return Preferences{DarkMode: dark, UpdatedAt: time.Unix(0, updated).UTC()}, nil
}

// SetDarkMode persists the dark mode flag.
func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		keyDarkMode, strconv.FormatBool(on), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	s.logger.Debug("saved dark mode", logging.Field{Key: "dark_mode", Value: on})
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
