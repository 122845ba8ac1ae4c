package gesture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAddRemove(t *testing.T) {
	m := NewMap()
	ref := ScriptRef{Module: "browseMode", Class: "BrowseModeDocument", Name: "copy"}

	require.NoError(t, m.Add("Ctrl+C", ref))
	require.NoError(t, m.Add("kb:control+c", ref))
	assert.Equal(t, []ScriptRef{ref}, m.ScriptsForGesture("kb:control+c"))
	assert.Equal(t, 1, m.Len())

	m.Remove("control+c", ref)
	assert.Nil(t, m.ScriptsForGesture("kb:control+c"))
	assert.Equal(t, 0, m.Len())

	// повторное удаление безопасно
	m.Remove("control+c", ref)
}

func TestMapReturnsCopy(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("ctrl+z", ScriptRef{Module: "a", Class: "B", Name: "undo"}))
	refs := m.ScriptsForGesture("kb:control+z")
	refs[0].Name = "changed"
	assert.Equal(t, "undo", m.ScriptsForGesture("kb:control+z")[0].Name)
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gestures.toml")
	content := `
[[binding]]
gesture = "kb:control+c"
module = "browseMode"
class = "BrowseModeDocument"
script = "copyToClipboard"

[[binding]]
gesture = "ctrl+a"
module = "browseMode"
class = "BrowseModeDocument"
script = ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := LoadMap(path)
	require.NoError(t, err)
	assert.Equal(t, []ScriptRef{{Module: "browseMode", Class: "BrowseModeDocument", Name: "copyToClipboard"}},
		m.ScriptsForGesture("kb:control+c"))
	assert.Equal(t, []ScriptRef{{Module: "browseMode", Class: "BrowseModeDocument"}},
		m.ScriptsForGesture("kb:control+a"))
}

func TestLoadMapMissingFile(t *testing.T) {
	m, err := LoadMap(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	m, err = LoadMap("")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestLoadMapInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[binding]]\ngesture = \"hyper+q\"\n"), 0644))
	_, err := LoadMap(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("not = [toml"), 0644))
	_, err = LoadMap(path)
	assert.Error(t, err)
}
