package audio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/translate"
)

// Announcer is what the Scheduler plays through. *Speaker implements it.
type Announcer interface {
	Confirm(ctx context.Context, dots braille.DotSet) error
	Speak(ctx context.Context, text, lang string) error
}

// ConfirmationDelay approximates how long the spoken confirmation of n dots
// lasts: 0.2·n² + 0.1 seconds, clamped to [0.5s, 1.5s].
func ConfirmationDelay(n int) time.Duration {
	secs := 0.2*float64(n*n) + 0.1
	secs = min(max(secs, 0.5), 1.5)
	return time.Duration(secs * float64(time.Second))
}

// Scheduler plays the dot confirmation for each translation at once and the
// translated word after ConfirmationDelay. The delay is best effort: a slow
// player can still overlap. A newer translation cancels a word that has not
// started yet. Scheduler implements translate.Sink.
type Scheduler struct {
	speaker Announcer
	lang    string
	delay   func(n int) time.Duration
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// NewScheduler returns a Scheduler speaking words in lang.
func NewScheduler(speaker Announcer, lang string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		speaker: speaker,
		lang:    lang,
		delay:   ConfirmationDelay,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Deliver implements translate.Sink. It never blocks on playback.
func (s *Scheduler) Deliver(_ context.Context, t translate.Translation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if s.pending != nil && s.pending.Stop() {
		s.wg.Done()
		s.logger.Debug("pending word cancelled")
	}
	s.pending = nil

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.speaker.Confirm(s.ctx, t.Dots); err != nil {
			s.logPlaybackError("dot confirmation", err)
		}
	}()

	if t.Result.Empty() || t.Result.Unresolved() {
		s.logger.Info("translation not found", "dots", t.Dots.String())
		return
	}

	word := t.Result.Text()
	s.wg.Add(1)
	s.pending = time.AfterFunc(s.delay(t.Dots.Len()), func() {
		defer s.wg.Done()
		if err := s.speaker.Speak(s.ctx, word, s.lang); err != nil {
			s.logPlaybackError("word", err)
		}
	})
}

// Stop cancels pending and in-flight playback and waits for it to end.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if s.pending != nil && s.pending.Stop() {
		s.wg.Done()
	}
	s.pending = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) logPlaybackError(what string, err error) {
	switch {
	case errors.Is(err, context.Canceled):
	case errors.Is(err, ErrNoAudio):
		s.logger.Debug("no audio", "what", what, "error", err)
	default:
		s.logger.Warn("playback failed", "what", what, "error", err)
	}
}
