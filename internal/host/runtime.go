// Package host — среда, в которой работает плагин: таблица привязок скриптов,
// однопоточная диспетчеризация жестов и источники ввода.
package host

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vanthinh296/say-function/internal/gesture"
	"go.uber.org/zap"
)

var ErrAlreadyBound = errors.New("host: gesture already bound")

// Handler скрипт, привязанный к жесту.
type Handler func(g gesture.Gesture) error

// Binding запись таблицы привязок.
type Binding struct {
	Chord       string
	Name        string
	Description string
	Handler     Handler
}

// Runtime хранит привязки и вызывает обработчики по одному, до завершения каждого.
type Runtime struct {
	logger *zap.SugaredLogger

	mu       sync.RWMutex
	bindings map[string]Binding
}

func NewRuntime(logger *zap.SugaredLogger) *Runtime {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runtime{logger: logger, bindings: make(map[string]Binding)}
}

// Bind регистрирует обработчик для аккорда.
func (r *Runtime) Bind(b Binding) error {
	id, err := gesture.NormalizeChord(b.Chord)
	if err != nil {
		return err
	}
	if b.Handler == nil {
		return fmt.Errorf("host: binding %s has no handler", id)
	}
	b.Chord = id
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, id)
	}
	r.bindings[id] = b
	return nil
}

// Unbind убирает привязку; отсутствие привязки не ошибка.
func (r *Runtime) Unbind(chord string) {
	id, err := gesture.NormalizeChord(chord)
	if err != nil {
		return
	}
	r.mu.Lock()
	delete(r.bindings, id)
	r.mu.Unlock()
}

// Describe список привязок, отсортированный по аккорду.
func (r *Runtime) Describe() []Binding {
	r.mu.RLock()
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Chord < out[j].Chord })
	return out
}

// Chords аккорды, которые должен перехватывать источник ввода.
func (r *Runtime) Chords() []string {
	bs := r.Describe()
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Chord
	}
	return out
}

// Dispatch вызывает привязанный обработчик. Жест без привязки уходит
// в обычный конвейер ввода без изменений. Ошибка обработчика возвращается вызывающему.
func (r *Runtime) Dispatch(g gesture.Gesture) (bool, error) {
	b, ok := r.lookup(g)
	if !ok {
		return false, g.Send()
	}
	return true, b.Handler(g)
}

func (r *Runtime) lookup(g gesture.Gesture) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range g.Identifiers() {
		if b, ok := r.bindings[id]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Run обрабатывает жесты из канала до его закрытия или отмены контекста.
// Ошибки обработчиков логируются и не прерывают цикл.
func (r *Runtime) Run(ctx context.Context, in <-chan gesture.Gesture) error {
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case g, ok := <-in:
			if !ok {
				return nil
			}
			r.safeDispatch(g)
		}
	}
}

func (r *Runtime) safeDispatch(g gesture.Gesture) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Errorw("Gesture handler panicked", "gesture", g.Identifiers(), "panic", p)
		}
	}()
	handled, err := r.Dispatch(g)
	if err != nil {
		r.logger.Errorw("Gesture handler failed", "gesture", g.Identifiers(), "error", err)
		return
	}
	r.logger.Debugw("Gesture dispatched", "gesture", g.Identifiers(), "bound", handled)
}
