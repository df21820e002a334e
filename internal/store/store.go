// Package store keeps Braille character mappings, common words and user
// settings in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultFileName is the database file created by `braille init`.
const DefaultFileName = "braille.db"

const schema = `
CREATE TABLE IF NOT EXISTS braille_patterns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	braille_code TEXT UNIQUE NOT NULL,
	luganda_char TEXT NOT NULL,
	ipa_pronunciation TEXT,
	description TEXT
);

CREATE TABLE IF NOT EXISTS common_words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	braille_pattern TEXT NOT NULL,
	luganda_word TEXT NOT NULL,
	english_meaning TEXT,
	category TEXT
);

CREATE INDEX IF NOT EXISTS idx_common_words_pattern ON common_words (braille_pattern);

CREATE TABLE IF NOT EXISTS user_settings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	setting_name TEXT UNIQUE NOT NULL,
	setting_value TEXT
);
`

// Store is a SQLite-backed character and word store.
// It implements translate.Dictionary and translate.CharacterStore.
type Store struct {
	path string
	db   *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{path: path, db: db}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Counts holds the number of rows per table.
type Counts struct {
	Characters int
	Words      int
	Settings   int
}

// Counts returns row counts for each table.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	queries := []struct {
		table string
		dst   *int
	}{
		{"braille_patterns", &c.Characters},
		{"common_words", &c.Words},
		{"user_settings", &c.Settings},
	}
	for _, q := range queries {
		row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table)
		if err := row.Scan(q.dst); err != nil {
			return Counts{}, fmt.Errorf("counting %s: %w", q.table, err)
		}
	}
	return c, nil
}
