package chord

import (
	"fmt"
	"strings"

	"github.com/f3rmion/braille/internal/braille"
)

// Action is what happened to a key.
type Action int

const (
	KeyPress Action = iota
	KeyRelease
)

// Event is a key event from an input surface.
type Event struct {
	Key    string // key name, e.g. "f" or "space"
	Action Action
}

// KeyMap binds key names to dots and to the submit and clear signals.
type KeyMap struct {
	Dots   map[string]int `yaml:"dots"`
	Submit string         `yaml:"submit"`
	Clear  string         `yaml:"clear,omitempty"`
}

// DefaultKeyMap is the Perkins-style home-row layout: f d s for dots 1-3,
// j k l for dots 4-6, space to submit.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dots: map[string]int{
			"f": 1, "d": 2, "s": 3,
			"j": 4, "k": 5, "l": 6,
		},
		Submit: "space",
		Clear:  "backspace",
	}
}

// Normalize returns a copy of km with every key name lower-cased, the form
// Handle and Dot match against.
func (km KeyMap) Normalize() KeyMap {
	out := KeyMap{
		Dots:   make(map[string]int, len(km.Dots)),
		Submit: normalizeKey(km.Submit),
		Clear:  normalizeKey(km.Clear),
	}
	for k, d := range km.Dots {
		out.Dots[normalizeKey(k)] = d
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// Dot returns the dot bound to key.
func (km KeyMap) Dot(key string) (int, bool) {
	d, ok := km.Dots[strings.ToLower(key)]
	return d, ok
}

// KeyFor returns the key bound to dot.
func (km KeyMap) KeyFor(dot int) (string, bool) {
	for k, d := range km.Dots {
		if d == dot {
			return k, true
		}
	}
	return "", false
}

// Validate checks that every dot 1-6 is bound exactly once and that the
// submit key does not collide with a dot key. Key names are compared
// case-insensitively.
func (km KeyMap) Validate() error {
	seen := make(map[int]string, braille.MaxDot)
	names := make(map[string]string, len(km.Dots))
	for k, d := range km.Dots {
		if prev, ok := names[normalizeKey(k)]; ok {
			return fmt.Errorf("keys %q and %q name the same key", prev, k)
		}
		names[normalizeKey(k)] = k
		if !braille.ValidDot(d) {
			return fmt.Errorf("key %q: %w: %d", k, braille.ErrInvalidDot, d)
		}
		if prev, ok := seen[d]; ok {
			return fmt.Errorf("dot %d bound to both %q and %q", d, prev, k)
		}
		seen[d] = k
	}
	if len(seen) != braille.MaxDot {
		return fmt.Errorf("key map binds %d of %d dots", len(seen), braille.MaxDot)
	}
	if km.Submit == "" {
		return fmt.Errorf("key map has no submit key")
	}
	if _, ok := names[normalizeKey(km.Submit)]; ok {
		return fmt.Errorf("submit key %q is also a dot key", km.Submit)
	}
	return nil
}

// Handle applies a key event. Unknown keys are ignored. The submit key
// fires on press; its error is returned.
func (a *Aggregator) Handle(ev Event) error {
	key := strings.ToLower(ev.Key)
	a.mu.Lock()
	km := a.keys
	a.mu.Unlock()

	if d, ok := km.Dot(key); ok {
		switch ev.Action {
		case KeyPress:
			a.Press(d)
		case KeyRelease:
			a.Release(d)
		}
		return nil
	}

	if ev.Action != KeyPress {
		return nil
	}
	switch key {
	case km.Submit:
		_, err := a.Submit()
		return err
	case km.Clear:
		if km.Clear != "" {
			a.Clear()
		}
	}
	return nil
}

// KeyMap returns the aggregator's key map.
func (a *Aggregator) KeyMap() KeyMap {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.keys
}
