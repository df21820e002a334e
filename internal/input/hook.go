// Package input feeds global keyboard events into a chord aggregator.
package input

import (
	"context"
	"errors"
	"log/slog"

	hook "github.com/robotn/gohook"

	"github.com/f3rmion/braille/internal/chord"
)

// Source delivers raw keyboard events until End is called.
type Source interface {
	Start() chan hook.Event
	End()
}

type globalSource struct{}

func (globalSource) Start() chan hook.Event { return hook.Start() }
func (globalSource) End()                   { hook.End() }

// Listener forwards hook events for bound keys to an aggregator.
type Listener struct {
	agg    *chord.Aggregator
	source Source
	names  map[uint16]string
	logger *slog.Logger
}

// NewListener listens on the system-wide keyboard hook. Passing a nil
// source selects it.
func NewListener(agg *chord.Aggregator, source Source, logger *slog.Logger) *Listener {
	if source == nil {
		source = globalSource{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		agg:    agg,
		source: source,
		names:  keyNames(agg.KeyMap()),
		logger: logger,
	}
}

// keyNames resolves each bound key name to its hook keycode.
func keyNames(km chord.KeyMap) map[uint16]string {
	names := make(map[uint16]string, len(km.Dots)+2)
	add := func(name string) {
		if name == "" {
			return
		}
		if code, ok := hook.Keycode[name]; ok {
			names[code] = name
		}
	}
	for k := range km.Dots {
		add(k)
	}
	add(km.Submit)
	add(km.Clear)
	return names
}

// Translate converts a hook event into a chord event. Events for unbound
// keys and non-key events are dropped.
func (l *Listener) Translate(ev hook.Event) (chord.Event, bool) {
	var action chord.Action
	switch ev.Kind {
	case hook.KeyHold:
		action = chord.KeyPress
	case hook.KeyUp:
		action = chord.KeyRelease
	default:
		return chord.Event{}, false
	}
	name, ok := l.names[ev.Keycode]
	if !ok {
		return chord.Event{}, false
	}
	return chord.Event{Key: name, Action: action}, true
}

// Run consumes events until ctx is done or the source stops. The
// aggregator is closed on return so downstream consumers finish.
func (l *Listener) Run(ctx context.Context) error {
	events := l.source.Start()
	defer l.agg.Close()
	defer l.source.End()

	l.logger.Info("listening for chords", "bound_keys", len(l.names))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			ce, ok := l.Translate(ev)
			if !ok {
				continue
			}
			switch err := l.agg.Handle(ce); {
			case err == nil:
			case errors.Is(err, chord.ErrClosed):
				return nil
			default:
				l.logger.Warn("chord dropped", "error", err)
			}
		}
	}
}
