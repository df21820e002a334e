package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Setting names written by Seed.
const (
	SettingSpeechSpeed = "speech_speed"
	SettingVoiceGender = "voice_gender"
	SettingAudioVolume = "audio_volume"
)

// DefaultSettings are the initial user settings.
var DefaultSettings = map[string]string{
	SettingSpeechSpeed: "normal",
	SettingVoiceGender: "female",
	SettingAudioVolume: "100",
}

// Setting returns a user setting.
func (s *Store) Setting(ctx context.Context, name string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT setting_value FROM user_settings WHERE setting_name = ?`, name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %q: %w", name, err)
	}
	return value.String, true, nil
}

// SetSetting creates or updates a user setting.
func (s *Store) SetSetting(ctx context.Context, name, value string) error {
	if name == "" {
		return fmt.Errorf("setting name is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings (setting_name, setting_value) VALUES (?, ?)
		ON CONFLICT (setting_name) DO UPDATE SET setting_value = excluded.setting_value
	`, name, value)
	if err != nil {
		return fmt.Errorf("writing setting %q: %w", name, err)
	}
	return nil
}

// Settings returns all user settings.
func (s *Store) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT setting_name, COALESCE(setting_value, '') FROM user_settings`)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		settings[name] = value
	}
	return settings, rows.Err()
}
