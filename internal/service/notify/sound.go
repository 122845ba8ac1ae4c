package notify

import (
	"time"

	"github.com/vanthinh296/say-function/internal/action"
	"go.uber.org/zap"
)

// Setting источник пользовательской настройки «проигрывать звуки».
type Setting interface {
	PlaySounds() bool
}

// Длительность для резервной таблицы частот.
const fallbackDuration = 100 * time.Millisecond

// Резервная таблица частот по имени действия (один тон фиксированной длительности).
var fallbackFrequencies = byAction(map[string]int{
	"copy":       1000,
	"paste":      800,
	"cut":        600,
	"undo":       900,
	"redo":       700,
	"select_all": 500,
})

// byAction переводит таблицу по именам в таблицу по действиям; опечатка в имени — паника при старте.
func byAction(names map[string]int) map[action.Action]int {
	out := make(map[action.Action]int, len(names))
	for name, hz := range names {
		a, err := action.Parse(name)
		if err != nil {
			panic(err)
		}
		out[a] = hz
	}
	return out
}

// Notifier проигрывает короткий звуковой сигнал для действия, если это разрешено настройкой.
type Notifier struct {
	logger  *zap.SugaredLogger
	setting Setting
	backend ToneBackend
}

// NewNotifier создаёт нотификатор. backend nil — звуки не проигрываются.
func NewNotifier(logger *zap.SugaredLogger, setting Setting, backend ToneBackend) *Notifier {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if backend == nil {
		backend = NoOp{}
	}
	return &Notifier{logger: logger, setting: setting, backend: backend}
}

// Backend выбранный при старте способ воспроизведения.
func (n *Notifier) Backend() ToneBackend { return n.backend }

// Play проигрывает сигнал действия. Ошибки воспроизведения логируются и не возвращаются:
// сбой звука не должен мешать речевому сообщению.
func (n *Notifier) Play(a action.Action) {
	if n.setting == nil || !n.setting.PlaySounds() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			n.logger.Debugw("Tone playback panicked", "action", a.String(), "panic", r)
		}
	}()

	if cue, ok := a.Cue(); ok {
		for _, t := range cue {
			if err := n.backend.Beep(t.FrequencyHz, t.Duration); err != nil {
				n.logger.Debugw("Tone playback failed", "action", a.String(), "hz", t.FrequencyHz, "error", err)
				return
			}
		}
		return
	}

	// Сюда попадаем только для действия без тона; в закрытом наборе таких нет.
	hz, ok := fallbackFrequencies[a]
	if !ok {
		hz = 1000
	}
	if err := n.backend.Beep(hz, fallbackDuration); err != nil {
		n.logger.Debugw("Fallback beep failed", "action", a.String(), "error", err)
	}
}
