package host

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanthinh296/say-function/internal/gesture"
)

func chord(t *testing.T, spec string, sends *int) *gesture.Chord {
	t.Helper()
	g, err := gesture.NewChord(spec, func() error {
		if sends != nil {
			*sends++
		}
		return nil
	})
	require.NoError(t, err)
	return g
}

func TestBindAndDescribe(t *testing.T) {
	r := NewRuntime(nil)
	noop := func(gesture.Gesture) error { return nil }

	require.NoError(t, r.Bind(Binding{Chord: "Ctrl+Z", Name: "announceUndo", Description: "Undo operation", Handler: noop}))
	require.NoError(t, r.Bind(Binding{Chord: "kb:control+c", Name: "announceCopy", Description: "Copy selected item", Handler: noop}))
	assert.ErrorIs(t, r.Bind(Binding{Chord: "control+z", Handler: noop}), ErrAlreadyBound)
	assert.Error(t, r.Bind(Binding{Chord: "control+q"}))
	assert.Error(t, r.Bind(Binding{Chord: "", Handler: noop}))

	assert.Equal(t, []string{"kb:control+c", "kb:control+z"}, r.Chords())
	assert.Equal(t, "Undo operation", r.Describe()[1].Description)

	r.Unbind("ctrl+z")
	r.Unbind("ctrl+z")
	assert.Equal(t, []string{"kb:control+c"}, r.Chords())
}

func TestDispatch(t *testing.T) {
	r := NewRuntime(nil)
	var got []string
	require.NoError(t, r.Bind(Binding{Chord: "ctrl+c", Handler: func(g gesture.Gesture) error {
		got = append(got, g.Identifiers()[0])
		return nil
	}}))

	sends := 0
	handled, err := r.Dispatch(chord(t, "ctrl+c", &sends))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"kb:control+c"}, got)
	assert.Equal(t, 0, sends)

	handled, err = r.Dispatch(chord(t, "ctrl+s", &sends))
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, 1, sends)
}

func TestRunLogsErrorsAndContinues(t *testing.T) {
	r := NewRuntime(nil)
	calls := 0
	require.NoError(t, r.Bind(Binding{Chord: "ctrl+x", Handler: func(gesture.Gesture) error {
		calls++
		if calls == 1 {
			return errors.New("speech failed")
		}
		if calls == 2 {
			panic("handler bug")
		}
		return nil
	}}))

	in := make(chan gesture.Gesture, 3)
	for i := 0; i < 3; i++ {
		in <- chord(t, "ctrl+x", nil)
	}
	close(in)

	require.NoError(t, r.Run(context.Background(), in))
	assert.Equal(t, 3, calls)
}

func TestRunStopsOnCancel(t *testing.T) {
	r := NewRuntime(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx, make(chan gesture.Gesture))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineListener(t *testing.T) {
	input := "ctrl+c\n\n# comment\nhyper+q\nkb:control+z\n"
	l := NewLineListener(strings.NewReader(input), nil)
	out := make(chan gesture.Gesture, 4)

	require.NoError(t, l.Run(context.Background(), nil, out))
	close(out)

	var ids []string
	for g := range out {
		ids = append(ids, g.Identifiers()...)
		assert.NoError(t, g.Send())
	}
	assert.Equal(t, []string{"kb:control+c", "kb:control+z"}, ids)
}

func TestLineListenerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLineListener(strings.NewReader("ctrl+c\nctrl+v\n"), nil)
	out := make(chan gesture.Gesture)

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, nil, out) }()
	<-out
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestDesktopFocus(t *testing.T) {
	assert.Nil(t, DesktopFocus{}.Focus())
}

func TestOfferPassesChordThroughWhenQueueFull(t *testing.T) {
	out := make(chan gesture.Gesture, 1)
	sends := 0

	assert.True(t, offer(out, chord(t, "ctrl+c", &sends), nil))
	assert.Equal(t, 0, sends)

	assert.False(t, offer(out, chord(t, "ctrl+v", &sends), nil))
	assert.Equal(t, 1, sends)

	g := <-out
	assert.Equal(t, []string{"kb:control+c"}, g.Identifiers())
}
