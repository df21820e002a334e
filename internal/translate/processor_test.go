package translate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu  sync.Mutex
	got []Translation
}

func (s *recordingSink) Deliver(_ context.Context, t Translation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, t)
}

func TestProcessorRun(t *testing.T) {
	sink := &recordingSink{}
	p := NewProcessor(newEngine(), sink, quietLogger)

	ch := make(chan braille.DotSet, 4)
	ch <- braille.MustDotSet(1, 4, 6)
	ch <- braille.Empty
	ch <- braille.MustDotSet(1, 3)
	close(ch)

	require.NoError(t, p.Run(context.Background(), ch))
	require.Len(t, sink.got, 2)
	assert.Equal(t, "ny", sink.got[0].Result.Text())
	assert.Equal(t, "ɲ", sink.got[0].Result.PhoneticText())
	assert.Equal(t, braille.MustDotSet(1, 3), sink.got[1].Dots)
	assert.Equal(t, "k", sink.got[1].Result.Text())
}

func TestProcessorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan braille.DotSet)

	done := make(chan error, 1)
	go func() {
		done <- NewProcessor(newEngine(), SinkFunc(func(context.Context, Translation) {}), quietLogger).Run(ctx, ch)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("processor did not stop")
	}
}

func TestSinksFanOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	s := Sinks(a, nil, b)

	tr := Translation{Dots: braille.MustDotSet(1), Result: Result{Words: []string{"a"}, Phonetics: []string{"a"}}}
	s.Deliver(context.Background(), tr)

	assert.Equal(t, []Translation{tr}, a.got)
	assert.Equal(t, []Translation{tr}, b.got)
}
