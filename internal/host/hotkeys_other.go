//go:build !windows

package host

import "go.uber.org/zap"

// NewHotkeyListener глобальные хоткеи доступны только под Windows.
func NewHotkeyListener(_ *zap.SugaredLogger) (Listener, error) {
	return nil, ErrListenerUnavailable
}
