package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "sayFunction.toml"), nil)
	require.NoError(t, err)
	assert.False(t, s.PlaySounds())

	mem, err := Open("", nil)
	require.NoError(t, err)
	require.NoError(t, mem.SetPlaySounds(true))
	assert.True(t, mem.PlaySounds())
}

func TestSetPlaySoundsPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sayFunction.toml")
	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetPlaySounds(true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[sayFunction]")
	assert.Contains(t, string(data), "playSounds = true")

	again, err := Open(path, nil)
	require.NoError(t, err)
	assert.True(t, again.PlaySounds())
}

func TestOpenInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sayFunction.toml")
	require.NoError(t, os.WriteFile(path, []byte("[sayFunction\nplaySounds = "), 0644))
	_, err := Open(path, nil)
	assert.Error(t, err)
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sayFunction.toml")
	s, err := Open(path, nil)
	require.NoError(t, err)

	w, err := NewWatcher(s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("[sayFunction]\nplaySounds = true\n"), 0644))
	assert.Eventually(t, s.PlaySounds, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherStopIdempotent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "sayFunction.toml"), nil)
	require.NoError(t, err)
	w, err := NewWatcher(s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
