// Package config handles loading and saving user configuration for braille.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/braille/internal/chord"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration. Relative paths are relative to the
// config directory.
type Config struct {
	Database  string       `yaml:"database"`   // SQLite file with characters, words and settings
	WordList  string       `yaml:"word_list"`  // Optional JSONL word list
	Tables    string       `yaml:"tables"`     // Optional tables.yaml overriding the built-in tables
	AudioDir  string       `yaml:"audio_dir"`  // Pre-recorded segments, <segment>.wav|.mp3|.ogg
	CacheDir  string       `yaml:"cache_dir"`  // Synthesized speech cache
	Language  string       `yaml:"language"`   // Default speech language: lg, en or auto
	QueueSize int          `yaml:"queue_size"` // Chord submission buffer
	Keys      chord.KeyMap `yaml:"keys"`
	Speech    SpeechConfig `yaml:"speech"`
	Player    PlayerConfig `yaml:"player"`
}

// SpeechConfig holds settings for synthesized speech.
type SpeechConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Model        string        `yaml:"model"`                  // e.g. "gpt-4o-mini-tts"
	Voice        string        `yaml:"voice"`                  // e.g. "alloy"
	Speed        float64       `yaml:"speed"`                  // 0.25 to 4.0
	Instructions string        `yaml:"instructions,omitempty"` // Delivery hints for the model
	CacheTTL     time.Duration `yaml:"cache_ttl"`              // 0 keeps entries forever
}

// PlayerConfig selects the external audio player.
type PlayerConfig struct {
	Command string   `yaml:"command,omitempty"` // Empty picks a player for the OS
	Args    []string `yaml:"args,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Database:  "braille.db",
		WordList:  "words.jsonl",
		Tables:    "tables.yaml",
		AudioDir:  "audio",
		CacheDir:  "cache",
		Language:  "lg",
		QueueSize: chord.DefaultBuffer,
		Keys:      chord.DefaultKeyMap(),
		Speech: SpeechConfig{
			Enabled:  true,
			Model:    "gpt-4o-mini-tts",
			Voice:    "alloy",
			Speed:    1.0,
			CacheTTL: 30 * 24 * time.Hour,
		},
	}
}

// Load reads config.yaml from dir. A missing file yields the defaults.
// Fields absent from the file keep their default values.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// yaml.v3 merges into non-nil maps; a key map in the file replaces
	// the default one instead.
	cfg.Keys.Dots = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Keys.Dots == nil {
		cfg.Keys.Dots = chord.DefaultKeyMap().Dots
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Keys = cfg.Keys.Normalize()
	return cfg, nil
}

// Save writes cfg to config.yaml in dir.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch c.Language {
	case "lg", "en", "auto":
	default:
		return fmt.Errorf("language %q: want lg, en or auto", c.Language)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive, got %d", c.QueueSize)
	}
	if c.Speech.Speed < 0.25 || c.Speech.Speed > 4 {
		return fmt.Errorf("speech.speed %.2f out of range 0.25-4", c.Speech.Speed)
	}
	if err := c.Keys.Validate(); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// Path resolves p against dir unless it is empty or absolute.
func Path(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Resolved returns a copy of c with every path resolved against dir.
func (c *Config) Resolved(dir string) *Config {
	out := *c
	out.Database = Path(dir, c.Database)
	out.WordList = Path(dir, c.WordList)
	out.Tables = Path(dir, c.Tables)
	out.AudioDir = Path(dir, c.AudioDir)
	out.CacheDir = Path(dir, c.CacheDir)
	return &out
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "braille"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
