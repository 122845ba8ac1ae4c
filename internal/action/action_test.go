package action

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCueTable(t *testing.T) {
	ms := time.Millisecond
	cases := []struct {
		action Action
		want   Cue
	}{
		{Copy, Cue{{1000, 100 * ms}}},
		{Paste, Cue{{800, 100 * ms}}},
		{Cut, Cue{{600, 100 * ms}}},
		{Undo, Cue{{900, 80 * ms}, {700, 80 * ms}}},
		{Redo, Cue{{700, 80 * ms}, {900, 80 * ms}}},
		{SelectAll, Cue{{500, 200 * ms}}},
	}
	for _, tc := range cases {
		t.Run(tc.action.String(), func(t *testing.T) {
			got, ok := tc.action.Cue()
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCueReturnsCopy(t *testing.T) {
	cue, ok := Undo.Cue()
	require.True(t, ok)
	cue[0].FrequencyHz = 1

	again, _ := Undo.Cue()
	assert.Equal(t, 900, again[0].FrequencyHz)
}

func TestPhrasesAndChords(t *testing.T) {
	assert.Equal(t, "Copy", Copy.Phrase())
	assert.Equal(t, "Pasted", Paste.Phrase())
	assert.Equal(t, "Cut", Cut.Phrase())
	assert.Equal(t, "Undo", Undo.Phrase())
	assert.Equal(t, "Redo", Redo.Phrase())
	assert.Equal(t, "Select all", SelectAll.Phrase())

	chords := map[string]bool{}
	for _, a := range All() {
		assert.True(t, a.Valid())
		assert.NotEmpty(t, a.Description())
		chords[a.Chord()] = true
	}
	assert.Len(t, chords, 6)
	assert.Equal(t, "kb:control+z", Undo.Chord())
}

func TestUnknownAction(t *testing.T) {
	var a Action = 42
	assert.False(t, a.Valid())
	_, ok := a.Cue()
	assert.False(t, ok)
	assert.Equal(t, "action(42)", a.String())
}

func TestParse(t *testing.T) {
	a, err := Parse("select_all")
	require.NoError(t, err)
	assert.Equal(t, SelectAll, a)

	_, err = Parse("print")
	assert.Error(t, err)
}
