// Package chord turns press and release events from an input surface into
// submitted Braille dot-sets.
package chord

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/f3rmion/braille/internal/braille"
)

var (
	// ErrBacklogFull is returned by Submit when the submission buffer is full.
	// The chord is dropped and cleared.
	ErrBacklogFull = errors.New("submission backlog full")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("aggregator closed")
)

// DefaultBuffer is the submission channel capacity.
const DefaultBuffer = 16

// State is the aggregator's position in the chord state machine.
type State int

const (
	Idle         State = iota // no dots held
	Accumulating              // at least one dot held
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Accumulating:
		return "accumulating"
	default:
		return "unknown"
	}
}

// Aggregator collects held dots into a chord and hands submitted chords to a
// bounded channel. All methods are safe for concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	held   braille.DotSet
	out    chan braille.DotSet
	closed bool
	keys   KeyMap
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithBuffer sets the submission channel capacity.
func WithBuffer(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.out = make(chan braille.DotSet, n)
		}
	}
}

// WithKeyMap sets the key map used by Handle. Key names are lower-cased.
func WithKeyMap(km KeyMap) Option {
	return func(a *Aggregator) {
		a.keys = km.Normalize()
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an idle Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		keys:   DefaultKeyMap(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.out == nil {
		a.out = make(chan braille.DotSet, DefaultBuffer)
	}
	return a
}

// Submissions returns the channel of submitted chords. It is closed by Close.
func (a *Aggregator) Submissions() <-chan braille.DotSet {
	return a.out
}

// Press adds dot to the chord. Dots outside [1,6] are ignored.
func (a *Aggregator) Press(dot int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.held = a.held.With(dot)
}

// Release removes dot from the chord. Releasing never submits.
func (a *Aggregator) Release(dot int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.held = a.held.Without(dot)
}

// Toggle presses dot when it is not held and releases it otherwise.
// It serves surfaces that cannot report key releases.
func (a *Aggregator) Toggle(dot int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.held.Has(dot) {
		a.held = a.held.Without(dot)
	} else {
		a.held = a.held.With(dot)
	}
}

// Clear drops the current chord without submitting it.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.held = braille.Empty
}

// Submit emits the current chord and clears it. Submitting with no dots held
// is a no-op that returns braille.Empty. Submit never blocks.
func (a *Aggregator) Submit() (braille.DotSet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return braille.Empty, ErrClosed
	}
	if a.held.IsEmpty() {
		return braille.Empty, nil
	}

	s := a.held
	a.held = braille.Empty
	select {
	case a.out <- s:
		a.logger.Debug("chord submitted", "dots", s.String())
		return s, nil
	default:
		a.logger.Warn("chord dropped", "dots", s.String(), "reason", ErrBacklogFull)
		return s, ErrBacklogFull
	}
}

// Current returns a snapshot of the held dots.
func (a *Aggregator) Current() braille.DotSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.held
}

// State reports whether any dot is held.
func (a *Aggregator) State() State {
	if a.Current().IsEmpty() {
		return Idle
	}
	return Accumulating
}

// Close clears the chord and closes the submission channel. Events after
// Close are ignored. Close is idempotent.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.held = braille.Empty
	close(a.out)
}
