package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/f3rmion/braille/internal/braille"
)

const upsertCharacter = `
	INSERT INTO braille_patterns (braille_code, luganda_char, ipa_pronunciation, description)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (braille_code) DO UPDATE SET
		luganda_char = excluded.luganda_char,
		ipa_pronunciation = excluded.ipa_pronunciation,
		description = excluded.description
`

// LookupCharacter returns the stored mapping for one Braille cell.
func (s *Store) LookupCharacter(ctx context.Context, code string) (braille.CharacterEntry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT braille_code, luganda_char, COALESCE(ipa_pronunciation, ''), COALESCE(description, '')
		FROM braille_patterns
		WHERE braille_code = ?
	`, code)

	var e braille.CharacterEntry
	err := row.Scan(&e.Code, &e.Grapheme, &e.Phonetic, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return braille.CharacterEntry{}, false, nil
	}
	if err != nil {
		return braille.CharacterEntry{}, false, fmt.Errorf("looking up character %q: %w", code, err)
	}
	return e, true, nil
}

// PutCharacter inserts or replaces a character mapping.
func (s *Store) PutCharacter(ctx context.Context, e braille.CharacterEntry) error {
	_, err := s.db.ExecContext(ctx, upsertCharacter, e.Code, e.Grapheme, e.Phonetic, e.Description)
	if err != nil {
		return fmt.Errorf("storing character %q: %w", e.Code, err)
	}
	return nil
}

// Characters returns all character mappings ordered by cell.
func (s *Store) Characters(ctx context.Context) ([]braille.CharacterEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT braille_code, luganda_char, COALESCE(ipa_pronunciation, ''), COALESCE(description, '')
		FROM braille_patterns
		ORDER BY braille_code
	`)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	var entries []braille.CharacterEntry
	for rows.Next() {
		var e braille.CharacterEntry
		if err := rows.Scan(&e.Code, &e.Grapheme, &e.Phonetic, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
