// Package plugin сообщает голосом и звуком о нажатии сочетаний буфера обмена и редактирования.
package plugin

import (
	"errors"

	"github.com/vanthinh296/say-function/internal/action"
	"github.com/vanthinh296/say-function/internal/gesture"
	"github.com/vanthinh296/say-function/internal/host"
	"github.com/vanthinh296/say-function/internal/settings"
	"go.uber.org/zap"
)

// Binder таблица привязок скриптов хоста.
type Binder interface {
	Bind(b host.Binding) error
	Unbind(chord string)
}

// PanelRegistry список панелей настроек хоста.
type PanelRegistry interface {
	Register(p *settings.Panel)
	Unregister(p *settings.Panel) error
}

// Forwarder возвращает жест хосту или отдаёт его более приоритетному скрипту.
type Forwarder interface {
	Forward(g gesture.Gesture) (bool, error)
}

// Speaker произносит сообщение.
type Speaker interface {
	Message(text string) error
}

// Notifier проигрывает звуковой сигнал действия; ошибок не возвращает.
type Notifier interface {
	Play(a action.Action)
}

// Script строка статической таблицы; аккорд и описание берутся из действия.
type Script struct {
	Name   string
	Action action.Action
}

// Scripts статическая таблица обработчиков плагина.
var Scripts = []Script{
	{Name: "announceCopy", Action: action.Copy},
	{Name: "announcePasted", Action: action.Paste},
	{Name: "announceCut", Action: action.Cut},
	{Name: "announceUndo", Action: action.Undo},
	{Name: "announceRedo", Action: action.Redo},
	{Name: "announceSelectAll", Action: action.SelectAll},
}

// Deps зависимости плагина, предоставляемые хостом.
type Deps struct {
	Logger *zap.SugaredLogger
	// Secure — ограниченный режим хоста: плагин ничего не регистрирует.
	Secure    bool
	Binder    Binder
	Panels    PanelRegistry
	Panel     *settings.Panel
	Forwarder Forwarder
	Speaker   Speaker
	Notifier  Notifier
}

// Plugin глобальный плагин: создаётся при загрузке, Terminate — при выгрузке.
type Plugin struct {
	deps   Deps
	logger *zap.SugaredLogger
	bound  []string
	active bool
}

// New загружает плагин: регистрирует обработчики и панель настроек.
// В ограниченном режиме плагин пассивен, жесты идут хосту без изменений.
func New(d Deps) (*Plugin, error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	p := &Plugin{deps: d, logger: logger}
	if d.Secure {
		logger.Infow("Secure mode, plugin disabled")
		return p, nil
	}

	for _, s := range Scripts {
		b := host.Binding{
			Chord:       s.Action.Chord(),
			Name:        s.Name,
			Description: s.Action.Description(),
			Handler:     p.handler(s.Action),
		}
		if err := d.Binder.Bind(b); err != nil {
			p.unbind()
			return nil, err
		}
		p.bound = append(p.bound, b.Chord)
	}
	if d.Panels != nil && d.Panel != nil {
		d.Panels.Register(d.Panel)
	}
	p.active = true
	logger.Infow("Plugin loaded", "scripts", len(p.bound))
	return p, nil
}

// Terminate выгружает плагин. Повторный вызов безопасен.
func (p *Plugin) Terminate() {
	if p.deps.Secure {
		return
	}
	if p.deps.Panels != nil && p.deps.Panel != nil {
		if err := p.deps.Panels.Unregister(p.deps.Panel); err != nil && !errors.Is(err, settings.ErrPanelNotRegistered) {
			p.logger.Warnw("Failed to remove settings panel", "error", err)
		}
	}
	p.unbind()
	if p.active {
		p.active = false
		p.logger.Infow("Plugin terminated")
	}
}

// Active сообщает, зарегистрированы ли обработчики.
func (p *Plugin) Active() bool { return p.active }

func (p *Plugin) unbind() {
	for _, c := range p.bound {
		p.deps.Binder.Unbind(c)
	}
	p.bound = nil
}

// handler: отдать жест хосту, произнести фразу, проиграть сигнал.
// Результат Forward не влияет на остальные шаги.
func (p *Plugin) handler(a action.Action) host.Handler {
	return func(g gesture.Gesture) error {
		if _, err := p.deps.Forwarder.Forward(g); err != nil {
			return err
		}
		if err := p.deps.Speaker.Message(a.Phrase()); err != nil {
			return err
		}
		if p.deps.Notifier != nil {
			p.deps.Notifier.Play(a)
		}
		return nil
	}
}
