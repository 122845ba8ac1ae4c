//go:build !windows

package notify

import "time"

// SystemBeep недоступен вне Windows.
type SystemBeep struct{}

func (SystemBeep) Name() string { return "system-beep" }

func (SystemBeep) Probe() error { return ErrUnavailable }

func (SystemBeep) Beep(int, time.Duration) error { return ErrUnavailable }
