package settings

import (
	"errors"
	"sync"
)

var ErrPanelNotRegistered = errors.New("settings: panel not registered")

const (
	PanelTitle     = "Say Function"
	PlaySoundsText = "Play different sound effects when performing keyboard shortcuts"
	NoSoundLibNote = "Note: Sound libraries not available. Only tone beeps will work."
)

// Panel категория настроек плагина: один флажок и, при отсутствии
// дополнительных звуковых библиотек, информационная заметка.
type Panel struct {
	store *Store
	note  string
}

// NewPanel создаёт панель. soundLibraries=false добавляет заметку о недоступности.
func NewPanel(store *Store, soundLibraries bool) *Panel {
	p := &Panel{store: store}
	if !soundLibraries {
		p.note = NoSoundLibNote
	}
	return p
}

func (p *Panel) Title() string { return PanelTitle }

// Checkbox подпись и начальное состояние флажка.
func (p *Panel) Checkbox() (label string, checked bool) {
	return PlaySoundsText, p.store.PlaySounds()
}

// Note информационный текст; пусто — заметки нет.
func (p *Panel) Note() string { return p.note }

// Save сохраняет состояние флажка.
func (p *Panel) Save(checked bool) error {
	return p.store.SetPlaySounds(checked)
}

// Registry список панелей настроек хоста.
type Registry struct {
	mu     sync.Mutex
	panels []*Panel
}

func NewRegistry() *Registry { return &Registry{} }

// Register добавляет панель; повторная регистрация не дублирует её.
func (r *Registry) Register(p *Panel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.panels {
		if existing == p {
			return
		}
	}
	r.panels = append(r.panels, p)
}

// Unregister удаляет панель; ErrPanelNotRegistered если её нет.
func (r *Registry) Unregister(p *Panel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.panels {
		if existing == p {
			r.panels = append(r.panels[:i], r.panels[i+1:]...)
			return nil
		}
	}
	return ErrPanelNotRegistered
}

// Panels копия списка зарегистрированных панелей.
func (r *Registry) Panels() []*Panel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Panel, len(r.panels))
	copy(out, r.panels)
	return out
}
