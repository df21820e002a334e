package translate

import (
	"context"
	"log/slog"

	"github.com/f3rmion/braille/internal/braille"
)

// Translation is the outcome of one submitted chord.
type Translation struct {
	Dots   braille.DotSet
	Result Result
}

// Sink receives translations from a Processor.
type Sink interface {
	Deliver(ctx context.Context, t Translation)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, t Translation)

// Deliver calls f(ctx, t).
func (f SinkFunc) Deliver(ctx context.Context, t Translation) {
	f(ctx, t)
}

// Processor translates chords as they are submitted.
type Processor struct {
	engine *Engine
	sink   Sink
	logger *slog.Logger
}

// NewProcessor returns a Processor that hands each translation to sink.
func NewProcessor(engine *Engine, sink Sink, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{engine: engine, sink: sink, logger: logger}
}

// Run consumes submissions until the channel is closed or ctx is done.
// It returns ctx.Err() on cancellation and nil when the channel closes.
func (p *Processor) Run(ctx context.Context, submissions <-chan braille.DotSet) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-submissions:
			if !ok {
				return nil
			}
			if s.IsEmpty() {
				continue
			}
			r := p.engine.TranslateDots(ctx, s)
			p.logger.Debug("chord translated", "dots", s.String(), "word", r.Text(), "ipa", r.PhoneticText())
			p.sink.Deliver(ctx, Translation{Dots: s, Result: r})
		}
	}
}

// Sinks delivers each translation to every non-nil sink in order.
func Sinks(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, t Translation) {
		for _, s := range sinks {
			if s != nil {
				s.Deliver(ctx, t)
			}
		}
	})
}
