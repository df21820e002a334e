package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/f3rmion/braille/internal/braille"
)

// LookupCommonWord returns the first word stored for an exact cell pattern.
func (s *Store) LookupCommonWord(ctx context.Context, pattern string) (braille.WordEntry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT braille_pattern, luganda_word, COALESCE(english_meaning, ''), COALESCE(category, '')
		FROM common_words
		WHERE braille_pattern = ?
		ORDER BY id
		LIMIT 1
	`, pattern)

	var e braille.WordEntry
	err := row.Scan(&e.Pattern, &e.Word, &e.Meaning, &e.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return braille.WordEntry{}, false, nil
	}
	if err != nil {
		return braille.WordEntry{}, false, fmt.Errorf("looking up word %q: %w", pattern, err)
	}
	return e, true, nil
}

// AddWord stores a common word. The pattern is reduced to its Braille cells.
func (s *Store) AddWord(ctx context.Context, e braille.WordEntry) error {
	pattern := braille.Pattern(e.Pattern)
	if pattern == "" || e.Word == "" {
		return fmt.Errorf("adding word: pattern and word are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO common_words (braille_pattern, luganda_word, english_meaning, category)
		VALUES (?, ?, ?, ?)
	`, pattern, e.Word, e.Meaning, e.Category)
	if err != nil {
		return fmt.Errorf("adding word %q: %w", e.Word, err)
	}
	return nil
}

// Words returns all stored words, optionally filtered by category.
func (s *Store) Words(ctx context.Context, category string) ([]braille.WordEntry, error) {
	query := `
		SELECT braille_pattern, luganda_word, COALESCE(english_meaning, ''), COALESCE(category, '')
		FROM common_words`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	var words []braille.WordEntry
	for rows.Next() {
		var e braille.WordEntry
		if err := rows.Scan(&e.Pattern, &e.Word, &e.Meaning, &e.Category); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		words = append(words, e)
	}
	return words, rows.Err()
}
