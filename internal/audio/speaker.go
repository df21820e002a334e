package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/segment"
)

// SegmentPause is the gap between consecutive recorded segments.
const SegmentPause = 50 * time.Millisecond

// Language codes accepted by Speak.
const (
	Luganda = "lg"
	English = "en"
)

// Speaker speaks text: Luganda from recorded segments when every segment is
// playable, otherwise through the synthesizer.
type Speaker struct {
	library   *FileLibrary
	tokenizer *segment.Tokenizer
	synth     Synthesizer
	player    Player
	tempDir   string
	pause     time.Duration
	logger    *slog.Logger
}

// SpeakerOption configures a Speaker.
type SpeakerOption func(*Speaker)

// WithSynthesizer enables the speech fallback.
func WithSynthesizer(s Synthesizer) SpeakerOption {
	return func(sp *Speaker) {
		sp.synth = s
	}
}

// WithTempDir sets where synthesized audio is written before playback.
func WithTempDir(dir string) SpeakerOption {
	return func(sp *Speaker) {
		sp.tempDir = dir
	}
}

// WithPause overrides SegmentPause.
func WithPause(d time.Duration) SpeakerOption {
	return func(sp *Speaker) {
		sp.pause = d
	}
}

// WithSpeakerLogger sets the logger.
func WithSpeakerLogger(l *slog.Logger) SpeakerOption {
	return func(sp *Speaker) {
		if l != nil {
			sp.logger = l
		}
	}
}

// NewSpeaker returns a Speaker playing through player.
func NewSpeaker(library *FileLibrary, player Player, opts ...SpeakerOption) *Speaker {
	sp := &Speaker{
		library: library,
		player:  player,
		pause:   SegmentPause,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(sp)
	}
	sp.tokenizer = segment.New(library)
	return sp
}

// Segments returns the recorded segments Speak would play for text.
func (sp *Speaker) Segments(text string) []string {
	return sp.tokenizer.Tokenize(text)
}

// Speak plays text in lang. Luganda is tried from recordings first.
func (sp *Speaker) Speak(ctx context.Context, text, lang string) error {
	text = strings.TrimSpace(text)
	if text == "" || strings.Trim(text, braille.Unknown+" ") == "" {
		return fmt.Errorf("speaking %q: %w", text, ErrNoAudio)
	}

	if lang == Luganda {
		err := sp.playRecorded(ctx, text)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sp.logger.Debug("recorded playback unavailable", "text", text, "error", err)
	}

	return sp.playSynthesized(ctx, text, lang)
}

// Confirm announces a chord's dots, e.g. "dot 1 dot 4 dot 6". Without
// speech synthesis it falls back to recorded dot_<n> segments.
func (sp *Speaker) Confirm(ctx context.Context, dots braille.DotSet) error {
	if dots.IsEmpty() {
		return nil
	}
	err := sp.playSynthesized(ctx, DotConfirmation(dots), English)
	if err == nil || ctx.Err() != nil {
		return err
	}

	var paths []string
	for _, d := range dots.Dots() {
		if p, ok := sp.library.Path(fmt.Sprintf("dot_%d", d)); ok {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return err
	}
	return sp.playAll(ctx, paths)
}

func (sp *Speaker) playRecorded(ctx context.Context, text string) error {
	segs := sp.tokenizer.Tokenize(text)
	if len(segs) == 0 {
		return ErrNoAudio
	}

	paths := make([]string, len(segs))
	for i, s := range segs {
		p, ok := sp.library.Path(s)
		if !ok {
			return fmt.Errorf("segment %q: %w", s, ErrNoAudio)
		}
		paths[i] = p
	}
	sp.logger.Debug("playing segments", "text", text, "segments", segs)
	return sp.playAll(ctx, paths)
}

func (sp *Speaker) playAll(ctx context.Context, paths []string) error {
	for i, p := range paths {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sp.pause):
			}
		}
		if err := sp.player.Play(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (sp *Speaker) playSynthesized(ctx context.Context, text, lang string) error {
	if sp.synth == nil {
		return fmt.Errorf("speaking %q: %w", text, ErrNoAudio)
	}
	data, err := sp.synth.Synthesize(ctx, text, lang)
	if err != nil {
		return fmt.Errorf("speaking %q: %w: %w", text, ErrNoAudio, err)
	}

	f, err := os.CreateTemp(sp.tempDir, "speech-*.mp3")
	if err != nil {
		return fmt.Errorf("writing speech: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing speech: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing speech: %w", err)
	}
	return sp.player.Play(ctx, f.Name())
}

// DotConfirmation renders the spoken confirmation for a chord.
func DotConfirmation(dots braille.DotSet) string {
	parts := make([]string, 0, dots.Len())
	for _, d := range dots.Dots() {
		parts = append(parts, fmt.Sprintf("dot %d", d))
	}
	return strings.Join(parts, " ")
}
