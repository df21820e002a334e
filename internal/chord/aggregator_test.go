package chord

import (
	"sync"
	"testing"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordInterleavings(t *testing.T) {
	orders := [][]int{
		{1, 4, 6},
		{6, 4, 1},
		{4, 1, 6},
		{1, 1, 4, 6, 6},
	}

	for _, order := range orders {
		a := New()
		for _, d := range order {
			a.Press(d)
		}
		assert.Equal(t, Accumulating, a.State())

		s, err := a.Submit()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4, 6}, s.Dots())
		assert.Equal(t, s, <-a.Submissions())
		assert.Equal(t, Idle, a.State())
	}
}

func TestReleaseRemovesOnlyThatDot(t *testing.T) {
	a := New()
	a.Press(1)
	a.Press(4)
	a.Press(6)
	a.Release(4)

	s, err := a.Submit()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6}, s.Dots())
}

func TestReleaseDoesNotSubmit(t *testing.T) {
	a := New()
	a.Press(2)
	a.Release(2)

	assert.Equal(t, Idle, a.State())
	assert.Empty(t, a.Submissions())
}

func TestSubmitWhileIdle(t *testing.T) {
	a := New()
	s, err := a.Submit()
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
	assert.Empty(t, a.Submissions())
}

func TestOutOfRangeIgnored(t *testing.T) {
	a := New()
	a.Press(0)
	a.Press(7)
	a.Release(-3)
	a.Toggle(9)
	assert.Equal(t, Idle, a.State())
}

func TestToggle(t *testing.T) {
	a := New()
	a.Toggle(3)
	a.Toggle(5)
	a.Toggle(3)
	assert.Equal(t, braille.MustDotSet(5), a.Current())
}

func TestBacklogFull(t *testing.T) {
	a := New(WithBuffer(1))

	a.Press(1)
	_, err := a.Submit()
	require.NoError(t, err)

	a.Press(2)
	s, err := a.Submit()
	assert.ErrorIs(t, err, ErrBacklogFull)
	assert.Equal(t, braille.MustDotSet(2), s)
	assert.Equal(t, Idle, a.State(), "dropped chord must still be cleared")

	assert.Equal(t, braille.MustDotSet(1), <-a.Submissions())
}

func TestClose(t *testing.T) {
	a := New()
	a.Press(1)
	a.Close()

	assert.Equal(t, Idle, a.State())
	_, ok := <-a.Submissions()
	assert.False(t, ok)

	a.Press(2)
	assert.Equal(t, Idle, a.State())
	_, err := a.Submit()
	assert.ErrorIs(t, err, ErrClosed)

	a.Close()
}

func TestConcurrentPresses(t *testing.T) {
	a := New()
	var wg sync.WaitGroup
	for d := 1; d <= 6; d++ {
		wg.Add(1)
		go func(d int) {
			defer wg.Done()
			a.Press(d)
		}(d)
	}
	wg.Wait()

	s, err := a.Submit()
	require.NoError(t, err)
	assert.Equal(t, 6, s.Len())
}

func TestHandle(t *testing.T) {
	a := New()

	events := []Event{
		{Key: "f", Action: KeyPress},
		{Key: "J", Action: KeyPress},
		{Key: "l", Action: KeyPress},
		{Key: "q", Action: KeyPress},
		{Key: "l", Action: KeyRelease},
		{Key: "l", Action: KeyPress},
		{Key: "space", Action: KeyRelease},
	}
	for _, ev := range events {
		require.NoError(t, a.Handle(ev))
	}
	assert.Equal(t, braille.MustDotSet(1, 4, 6), a.Current())

	require.NoError(t, a.Handle(Event{Key: "space", Action: KeyPress}))
	assert.Equal(t, braille.MustDotSet(1, 4, 6), <-a.Submissions())

	a.Press(2)
	require.NoError(t, a.Handle(Event{Key: "backspace", Action: KeyPress}))
	assert.Equal(t, Idle, a.State())
}

func TestKeyMapValidate(t *testing.T) {
	require.NoError(t, DefaultKeyMap().Validate())

	km := DefaultKeyMap()
	km.Dots = map[string]int{"a": 1, "b": 1, "c": 3, "d": 4, "e": 5, "g": 6}
	assert.Error(t, km.Validate())

	km = DefaultKeyMap()
	km.Dots = map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "g": 7}
	assert.ErrorIs(t, km.Validate(), braille.ErrInvalidDot)

	km = DefaultKeyMap()
	km.Submit = "f"
	assert.Error(t, km.Validate())

	key, ok := DefaultKeyMap().KeyFor(4)
	require.True(t, ok)
	assert.Equal(t, "j", key)
}

func TestHandleUpperCaseKeyMap(t *testing.T) {
	a := New(WithKeyMap(KeyMap{
		Dots:   map[string]int{"F": 1, "D": 2, "S": 3, "J": 4, "K": 5, "L": 6},
		Submit: "Enter",
		Clear:  "Esc",
	}))

	require.NoError(t, a.Handle(Event{Key: "f", Action: KeyPress}))
	require.NoError(t, a.Handle(Event{Key: "J", Action: KeyPress}))
	assert.Equal(t, braille.MustDotSet(1, 4), a.Current())

	require.NoError(t, a.Handle(Event{Key: "enter", Action: KeyPress}))
	assert.Equal(t, braille.MustDotSet(1, 4), <-a.Submissions())

	a.Press(2)
	require.NoError(t, a.Handle(Event{Key: "esc", Action: KeyPress}))
	assert.Equal(t, Idle, a.State())
}

func TestKeyMapNormalize(t *testing.T) {
	km := KeyMap{
		Dots:   map[string]int{"F": 1, "d": 2, " S ": 3, "j": 4, "K": 5, "l": 6},
		Submit: "Space",
	}
	require.NoError(t, km.Validate())

	n := km.Normalize()
	assert.Equal(t, map[string]int{"f": 1, "d": 2, "s": 3, "j": 4, "k": 5, "l": 6}, n.Dots)
	assert.Equal(t, "space", n.Submit)
	d, ok := n.Dot("F")
	require.True(t, ok)
	assert.Equal(t, 1, d)

	tests := []struct {
		name string
		km   KeyMap
	}{
		{name: "same key twice", km: KeyMap{
			Dots:   map[string]int{"F": 1, "f": 2, "s": 3, "j": 4, "k": 5, "l": 6},
			Submit: "space",
		}},
		{name: "submit is a dot key", km: KeyMap{
			Dots:   map[string]int{"f": 1, "d": 2, "s": 3, "j": 4, "k": 5, "l": 6},
			Submit: "F",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.km.Validate())
		})
	}
}
