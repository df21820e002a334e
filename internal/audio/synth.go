package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// Synthesizer turns text into encoded audio (MP3).
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// SynthesizerFunc adapts a function to Synthesizer.
type SynthesizerFunc func(ctx context.Context, text, lang string) ([]byte, error)

// Synthesize calls f(ctx, text, lang).
func (f SynthesizerFunc) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	return f(ctx, text, lang)
}

// CachedSynthesizer answers repeated (text, lang) requests from a
// SpeechCache. Cache failures are logged and never fail a request.
type CachedSynthesizer struct {
	next   Synthesizer
	cache  *SpeechCache
	logger *slog.Logger
}

// NewCachedSynthesizer wraps next. A nil cache disables caching.
func NewCachedSynthesizer(next Synthesizer, cache *SpeechCache, logger *slog.Logger) *CachedSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSynthesizer{next: next, cache: cache, logger: logger}
}

// Synthesize returns cached audio or synthesizes and stores it.
func (c *CachedSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if c.cache != nil {
		data, ok, err := c.cache.Get(text, lang)
		if err != nil {
			c.logger.Warn("speech cache read failed", "error", err)
		} else if ok {
			c.logger.Debug("speech cache hit", "text", text, "lang", lang)
			return data, nil
		}
	}

	data, err := c.next.Synthesize(ctx, text, lang)
	if err != nil {
		return nil, fmt.Errorf("synthesizing %q: %w", text, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(text, lang, data); err != nil {
			c.logger.Warn("speech cache write failed", "error", err)
		}
	}
	return data, nil
}
