package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/f3rmion/braille/internal/audio"
	"github.com/f3rmion/braille/internal/config"
	"github.com/f3rmion/braille/internal/dict"
	"github.com/f3rmion/braille/internal/store"
	"github.com/f3rmion/braille/internal/table"
	"github.com/f3rmion/braille/internal/translate"
	"github.com/f3rmion/braille/internal/tts"
)

// services holds everything a command may need, opened from the config.
type services struct {
	cfg     *config.Config
	logger  *slog.Logger
	tables  table.Tables
	store   *store.Store   // nil without a database
	words   *dict.WordList // nil without a word list
	engine  *translate.Engine
	closers []func() error
}

// openServices loads the tables, opens the database and word list when they
// exist and builds the translation engine.
func openServices(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*services, error) {
	s := &services{cfg: cfg, logger: logger, tables: table.Default()}

	if exists(cfg.Tables) {
		t, err := table.LoadFile(cfg.Tables)
		if err != nil {
			return nil, err
		}
		s.tables = t
	}

	var dicts []translate.Dictionary
	opts := []translate.Option{translate.WithLogger(logger)}

	if exists(cfg.Database) {
		st, err := store.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		s.store = st
		s.closers = append(s.closers, st.Close)
		dicts = append(dicts, st)
		if err := st.SyncCharacters(ctx, s.tables); err != nil {
			logger.Warn("stored characters not synced, using tables only", "error", err)
		} else {
			opts = append(opts, translate.WithCharacterStore(st))
		}
	} else {
		logger.Debug("no database, run 'braille init' to create one", "path", cfg.Database)
	}

	if exists(cfg.WordList) {
		wl := dict.NewWordList()
		if err := wl.LoadFromFile(cfg.WordList); err != nil {
			s.Close()
			return nil, err
		}
		if n := wl.Skipped(); n > 0 {
			logger.Warn("skipped malformed word list lines", "path", cfg.WordList, "count", n)
		}
		s.words = wl
		dicts = append(dicts, wl)
	}

	if len(dicts) > 0 {
		opts = append(opts, translate.WithDictionary(translate.Dictionaries(dicts...)))
	}
	s.engine = translate.NewEngine(s.tables, opts...)
	return s, nil
}

// Close releases everything opened by openServices and its helpers.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// speaker builds the audio speaker: recorded segments, an external player
// and, when configured with an API key, cached OpenAI speech.
func (s *services) speaker() (*langSpeaker, error) {
	player, err := audio.NewExecPlayer(s.cfg.Player.Command, s.cfg.Player.Args...)
	if err != nil {
		return nil, err
	}

	opts := []audio.SpeakerOption{audio.WithSpeakerLogger(s.logger)}
	if synth := s.synthesizer(); synth != nil {
		opts = append(opts, audio.WithSynthesizer(synth))
	}

	sp := audio.NewSpeaker(audio.NewFileLibrary(s.cfg.AudioDir), player, opts...)
	ls := &langSpeaker{Speaker: sp}
	if s.cfg.Language == "auto" {
		ls.detector = tts.NewDetector(audio.Luganda)
	}
	return ls, nil
}

// synthesizer returns the cached speech synthesizer or nil when speech is
// disabled or unavailable.
func (s *services) synthesizer() audio.Synthesizer {
	if !s.cfg.Speech.Enabled {
		return nil
	}
	synth, err := tts.NewOpenAI(tts.Options{
		Model:        s.cfg.Speech.Model,
		Voice:        s.cfg.Speech.Voice,
		Speed:        s.cfg.Speech.Speed,
		Instructions: s.cfg.Speech.Instructions,
	})
	if err != nil {
		s.logger.Info("speech synthesis disabled", "reason", err)
		return nil
	}

	cache, err := audio.OpenSpeechCache(s.cfg.CacheDir, s.cfg.Speech.CacheTTL)
	if err != nil {
		s.logger.Warn("speech cache unavailable", "error", err)
		return synth
	}
	s.closers = append(s.closers, cache.Close)
	return audio.NewCachedSynthesizer(synth, cache, s.logger)
}

// openCache opens the speech cache for maintenance commands.
func (s *services) openCache() (*audio.SpeechCache, error) {
	if err := config.EnsureDir(s.cfg.CacheDir); err != nil {
		return nil, err
	}
	cache, err := audio.OpenSpeechCache(s.cfg.CacheDir, s.cfg.Speech.CacheTTL)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, cache.Close)
	return cache, nil
}

// watchWords reloads the word list on change until ctx is done.
func (s *services) watchWords(ctx context.Context) {
	if s.words == nil {
		return
	}
	go func() {
		if err := dict.Watch(ctx, s.cfg.WordList, s.words, s.logger); err != nil {
			s.logger.Warn("word list will not reload", "error", err)
		}
	}()
}

// requireStore fails with a hint when no database is open.
func (s *services) requireStore() (*store.Store, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no database at %s, run 'braille init' first", s.cfg.Database)
	}
	return s.store, nil
}

// langSpeaker resolves "auto" to a concrete language before speaking.
type langSpeaker struct {
	*audio.Speaker
	detector *tts.Detector
}

// Speak implements audio.Announcer and the TUI speaker.
func (l *langSpeaker) Speak(ctx context.Context, text, lang string) error {
	if lang == "auto" {
		lang = audio.Luganda
		if l.detector != nil {
			lang = l.detector.Detect(text)
		}
	}
	return l.Speaker.Speak(ctx, text, lang)
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
