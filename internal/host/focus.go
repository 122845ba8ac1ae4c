package host

import "github.com/vanthinh296/say-function/internal/gesture"

// DesktopFocus фокус на рабочем столе: слоя перехвата нет, жесты всегда
// возвращаются в приложение.
type DesktopFocus struct{}

func (DesktopFocus) Focus() gesture.Object { return nil }
