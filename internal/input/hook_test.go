package input

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/chord"
)

type fakeSource struct {
	events chan hook.Event
	ended  bool
}

func (f *fakeSource) Start() chan hook.Event { return f.events }
func (f *fakeSource) End()                   { f.ended = true }

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func key(kind uint8, name string) hook.Event {
	return hook.Event{Kind: kind, Keycode: hook.Keycode[name]}
}

func TestTranslate(t *testing.T) {
	agg := chord.New()
	defer agg.Close()
	l := NewListener(agg, &fakeSource{}, quiet())

	tests := []struct {
		name   string
		ev     hook.Event
		want   chord.Event
		wantOK bool
	}{
		{"dot press", key(hook.KeyHold, "f"), chord.Event{Key: "f", Action: chord.KeyPress}, true},
		{"dot release", key(hook.KeyUp, "l"), chord.Event{Key: "l", Action: chord.KeyRelease}, true},
		{"submit", key(hook.KeyHold, "space"), chord.Event{Key: "space", Action: chord.KeyPress}, true},
		{"typed event ignored", key(hook.KeyDown, "f"), chord.Event{}, false},
		{"unbound key", key(hook.KeyHold, "q"), chord.Event{}, false},
		{"mouse", hook.Event{Kind: hook.MouseDown}, chord.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Translate(tt.ev)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunSubmitsChord(t *testing.T) {
	src := &fakeSource{events: make(chan hook.Event, 8)}
	agg := chord.New()
	l := NewListener(agg, src, quiet())

	src.events <- key(hook.KeyHold, "f")
	src.events <- key(hook.KeyHold, "j")
	src.events <- key(hook.KeyHold, "l")
	src.events <- key(hook.KeyHold, "space")
	close(src.events)

	require.NoError(t, l.Run(context.Background()))
	assert.True(t, src.ended)

	var got []braille.DotSet
	for ds := range agg.Submissions() {
		got = append(got, ds)
	}
	assert.Equal(t, []braille.DotSet{braille.MustDotSet(1, 4, 6)}, got)
}

func TestRunStopsOnCancel(t *testing.T) {
	src := &fakeSource{events: make(chan hook.Event)}
	agg := chord.New()
	l := NewListener(agg, src, quiet())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	_, err := agg.Submit()
	assert.ErrorIs(t, err, chord.ErrClosed)
}
