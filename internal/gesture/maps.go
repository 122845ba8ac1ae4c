package gesture

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// ScriptRef ссылка на скрипт из таблицы привязок.
// Пустой Name означает, что аккорд явно отвязан для этого класса.
type ScriptRef struct {
	Module string
	Class  string
	Name   string
}

// Map таблица привязок жест → скрипты. Безопасна для конкурентного чтения.
type Map struct {
	mu       sync.RWMutex
	bindings map[string][]ScriptRef
}

func NewMap() *Map {
	return &Map{bindings: make(map[string][]ScriptRef)}
}

// Add привязывает скрипт к жесту. Повторная привязка не дублируется.
func (m *Map) Add(chord string, ref ScriptRef) error {
	id, err := NormalizeChord(chord)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.bindings[id] {
		if r == ref {
			return nil
		}
	}
	m.bindings[id] = append(m.bindings[id], ref)
	return nil
}

// Remove убирает привязку; отсутствие привязки не ошибка.
func (m *Map) Remove(chord string, ref ScriptRef) {
	id, err := NormalizeChord(chord)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	refs := m.bindings[id]
	for i, r := range refs {
		if r == ref {
			m.bindings[id] = append(refs[:i:i], refs[i+1:]...)
			break
		}
	}
	if len(m.bindings[id]) == 0 {
		delete(m.bindings, id)
	}
}

// ScriptsForGesture возвращает копию списка привязок для идентификатора.
func (m *Map) ScriptsForGesture(id string) []ScriptRef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	refs := m.bindings[id]
	if len(refs) == 0 {
		return nil
	}
	out := make([]ScriptRef, len(refs))
	copy(out, refs)
	return out
}

// Len количество жестов с привязками.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bindings)
}

type bindingFile struct {
	Binding []struct {
		Gesture string `toml:"gesture"`
		Module  string `toml:"module"`
		Class   string `toml:"class"`
		Script  string `toml:"script"`
	} `toml:"binding"`
}

// LoadMap читает пользовательские привязки из TOML файла:
//
//	[[binding]]
//	gesture = "kb:control+c"
//	module = "browseMode"
//	class = "BrowseModeDocument"
//	script = "copy"
//
// Отсутствующий файл даёт пустую таблицу.
func LoadMap(path string) (*Map, error) {
	m := NewMap()
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("gesture map: read %s: %w", path, err)
	}
	var f bindingFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("gesture map: parse %s: %w", path, err)
	}
	for _, b := range f.Binding {
		ref := ScriptRef{Module: b.Module, Class: b.Class, Name: b.Script}
		if err := m.Add(b.Gesture, ref); err != nil {
			return nil, fmt.Errorf("gesture map: %s: %w", path, err)
		}
	}
	return m, nil
}
