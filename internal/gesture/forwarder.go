package gesture

import "go.uber.org/zap"

// ScriptMap источник привязок (пользовательская или локальная таблица).
type ScriptMap interface {
	ScriptsForGesture(id string) []ScriptRef
}

// Script исполняемый скрипт слоя перехвата.
type Script struct {
	Name string
	// IgnoreTreeInterceptorPassThrough — скрипт выполняется даже в режиме сквозной передачи.
	IgnoreTreeInterceptorPassThrough bool
	Run                              func(ti TreeInterceptor, g Gesture) error
}

// TreeInterceptor слой перехвата ввода (например, режим обзора документа).
type TreeInterceptor interface {
	IsReady() bool
	PassThrough() bool
	// MatchesClass сообщает, относится ли слой к классу module.class (с учётом наследования).
	MatchesClass(module, class string) bool
	// ScriptByName возвращает скрипт по имени или nil.
	ScriptByName(name string) *Script
	// ScriptForGesture собственная привязка слоя к жесту или nil.
	ScriptForGesture(g Gesture) *Script
}

// Object объект, которому принадлежит фокус ввода.
type Object interface {
	// TreeInterceptor может вернуть nil.
	TreeInterceptor() TreeInterceptor
}

// FocusProvider отдаёт текущий объект фокуса; nil — фокуса нет.
type FocusProvider interface {
	Focus() Object
}

// Forwarder решает, отдать ли жест более приоритетному скрипту слоя перехвата
// или вернуть его в обычный конвейер ввода.
type Forwarder struct {
	user   ScriptMap
	locale ScriptMap
	focus  FocusProvider
	logger *zap.SugaredLogger
}

// NewForwarder: user и locale могут быть nil.
func NewForwarder(user, locale ScriptMap, focus FocusProvider, logger *zap.SugaredLogger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Forwarder{user: user, locale: locale, focus: focus, logger: logger}
}

// Forward возвращает true, если жест обработан скриптом слоя перехвата.
// Иначе исходное событие отправляется ровно один раз и возвращается false.
func (f *Forwarder) Forward(g Gesture) (bool, error) {
	scripts := f.collect(g)

	if ti := f.readyInterceptor(); ti != nil {
		s := resolveScript(ti, g, scripts)
		if s != nil && s.Run != nil && (!ti.PassThrough() || s.IgnoreTreeInterceptorPassThrough) {
			f.logger.Debugw("Gesture handled by tree interceptor", "gesture", g.Identifiers(), "script", s.Name)
			return true, s.Run(ti, g)
		}
	}

	return false, g.Send()
}

// collect — сначала пользовательские привязки, затем локальные.
func (f *Forwarder) collect(g Gesture) []ScriptRef {
	var scripts []ScriptRef
	for _, m := range []ScriptMap{f.user, f.locale} {
		if m == nil {
			continue
		}
		for _, id := range g.Identifiers() {
			scripts = append(scripts, m.ScriptsForGesture(id)...)
		}
	}
	return scripts
}

func (f *Forwarder) readyInterceptor() TreeInterceptor {
	if f.focus == nil {
		return nil
	}
	obj := f.focus.Focus()
	if obj == nil {
		return nil
	}
	ti := obj.TreeInterceptor()
	if ti == nil || !ti.IsReady() {
		return nil
	}
	return ti
}

// resolveScript ищет лучший скрипт: первая привязка класса слоя выигрывает,
// пустое имя означает явную отвязку. Без привязок — собственный скрипт слоя.
func resolveScript(ti TreeInterceptor, g Gesture, scripts []ScriptRef) *Script {
	for _, ref := range scripts {
		if !ti.MatchesClass(ref.Module, ref.Class) {
			continue
		}
		if ref.Name == "" {
			return nil
		}
		if s := ti.ScriptByName(ref.Name); s != nil {
			return s
		}
	}
	return ti.ScriptForGesture(g)
}
