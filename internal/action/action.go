package action

import (
	"fmt"
	"time"
)

// Action — распознаваемое действие редактирования. Набор закрыт.
type Action int

const (
	Copy Action = iota + 1
	Paste
	Cut
	Undo
	Redo
	SelectAll
)

// ToneSpec одиночный тон: частота в герцах и длительность.
type ToneSpec struct {
	FrequencyHz int
	Duration    time.Duration
}

// Cue последовательность тонов, проигрываемая подряд.
type Cue []ToneSpec

type entry struct {
	name        string
	phrase      string
	description string
	chord       string
	cue         Cue
}

func tone(hz int, ms int) ToneSpec {
	return ToneSpec{FrequencyHz: hz, Duration: time.Duration(ms) * time.Millisecond}
}

// Таблица неизменяема после инициализации пакета.
var table = map[Action]entry{
	Copy:      {name: "copy", phrase: "Copy", description: "Copy selected item", chord: "kb:control+c", cue: Cue{tone(1000, 100)}},
	Paste:     {name: "paste", phrase: "Pasted", description: "Pasted item", chord: "kb:control+v", cue: Cue{tone(800, 100)}},
	Cut:       {name: "cut", phrase: "Cut", description: "Cut selected item", chord: "kb:control+x", cue: Cue{tone(600, 100)}},
	Undo:      {name: "undo", phrase: "Undo", description: "Undo operation", chord: "kb:control+z", cue: Cue{tone(900, 80), tone(700, 80)}},
	Redo:      {name: "redo", phrase: "Redo", description: "Redo operation", chord: "kb:control+y", cue: Cue{tone(700, 80), tone(900, 80)}},
	SelectAll: {name: "select_all", phrase: "Select all", description: "Select all", chord: "kb:control+a", cue: Cue{tone(500, 200)}},
}

// All возвращает все действия в порядке объявления.
func All() []Action {
	return []Action{Copy, Paste, Cut, Undo, Redo, SelectAll}
}

// Valid сообщает, входит ли значение в закрытый набор действий.
func (a Action) Valid() bool {
	_, ok := table[a]
	return ok
}

// String возвращает символьное имя действия (copy, paste, ..., select_all).
func (a Action) String() string {
	if e, ok := table[a]; ok {
		return e.name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Phrase — короткая фраза, которую произносит анонсер.
func (a Action) Phrase() string { return table[a].phrase }

// Description — описание скрипта для списка привязок.
func (a Action) Description() string { return table[a].description }

// Chord — жест, к которому привязан обработчик, в нормализованном виде.
func (a Action) Chord() string { return table[a].chord }

// Cue возвращает копию последовательности тонов для действия.
// ok=false для неизвестного действия.
func (a Action) Cue() (Cue, bool) {
	e, ok := table[a]
	if !ok {
		return nil, false
	}
	out := make(Cue, len(e.cue))
	copy(out, e.cue)
	return out, true
}

// Parse находит действие по символьному имени.
func Parse(name string) (Action, error) {
	for a, e := range table {
		if e.name == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("action: unknown name %q", name)
}
