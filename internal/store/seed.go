package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/table"
)

// SeedWords are the common words written by Seed.
var SeedWords = []braille.WordEntry{
	{Pattern: "⠁⠃⠁⠃⠊", Word: "ababi", Meaning: "bad people", Category: "nouns"},
	{Pattern: "⠁⠃⠁⠝⠞⠥", Word: "abantu", Meaning: "people", Category: "nouns"},
	{Pattern: "⠍⠥⠅⠭⠁⠝⠕", Word: "mukwano", Meaning: "friend", Category: "nouns"},
}

// Seed fills the database with the character table, the seed words and the
// default settings. Characters are overwritten from t; existing words and
// settings are kept, so Seed can run on every init.
func (s *Store) Seed(ctx context.Context, t table.Tables) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed: %w", err)
	}
	defer tx.Rollback()

	if err := putCharacters(ctx, tx, t); err != nil {
		return err
	}

	for _, w := range SeedWords {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO common_words (braille_pattern, luganda_word, english_meaning, category)
			SELECT ?, ?, ?, ?
			WHERE NOT EXISTS (
				SELECT 1 FROM common_words WHERE braille_pattern = ? AND luganda_word = ?
			)
		`, w.Pattern, w.Word, w.Meaning, w.Category, w.Pattern, w.Word)
		if err != nil {
			return fmt.Errorf("seeding word %q: %w", w.Word, err)
		}
	}

	for name, value := range DefaultSettings {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_settings (setting_name, setting_value) VALUES (?, ?)`,
			name, value)
		if err != nil {
			return fmt.Errorf("seeding setting %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

// SyncCharacters overwrites the stored mapping of every cell in t, so the
// character store never disagrees with the loaded tables. Cells that t does
// not map are left alone.
func (s *Store) SyncCharacters(ctx context.Context, t table.Tables) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting character sync: %w", err)
	}
	defer tx.Rollback()

	if err := putCharacters(ctx, tx, t); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing character sync: %w", err)
	}
	return nil
}

func putCharacters(ctx context.Context, tx *sql.Tx, t table.Tables) error {
	for _, e := range t.Graphemes.Entries() {
		_, err := tx.ExecContext(ctx, upsertCharacter,
			string(e.Dots.Cell()), e.Grapheme, t.Phonetics.Lookup(e.Grapheme), table.Describe(e.Grapheme))
		if err != nil {
			return fmt.Errorf("storing character %q: %w", e.Grapheme, err)
		}
	}
	return nil
}
