package gesture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChord(t *testing.T) {
	cases := map[string]string{
		"kb:control+c":      "kb:control+c",
		"Ctrl+C":            "kb:control+c",
		" kb:CONTROL+z ":    "kb:control+z",
		"shift+control+y":   "kb:control+shift+y",
		"kb:alt+ctrl+a":     "kb:alt+control+a",
		"windows+shift+tab": "kb:shift+windows+tab",
	}
	for in, want := range cases {
		got, err := NormalizeChord(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizeChordErrors(t *testing.T) {
	_, err := NormalizeChord("")
	assert.ErrorIs(t, err, ErrEmptyChord)

	_, err = NormalizeChord("control+")
	assert.Error(t, err)

	_, err = NormalizeChord("hyper+c")
	assert.Error(t, err)
}

func TestChordSend(t *testing.T) {
	calls := 0
	c, err := NewChord("ctrl+v", func() error { calls++; return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"kb:control+v"}, c.Identifiers())
	require.NoError(t, c.Send())
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	c, err = NewChord("ctrl+x", func() error { return boom })
	require.NoError(t, err)
	assert.ErrorIs(t, c.Send(), boom)

	c, err = NewChord("ctrl+a", nil)
	require.NoError(t, err)
	assert.NoError(t, c.Send())
}
