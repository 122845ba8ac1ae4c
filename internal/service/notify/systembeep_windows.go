//go:build windows

package notify

import (
	"syscall"
	"time"
)

var (
	kernel32 = syscall.NewLazyDLL("kernel32.dll")
	procBeep = kernel32.NewProc("Beep")
)

// SystemBeep системный сигнал Windows (kernel32!Beep).
type SystemBeep struct{}

func (SystemBeep) Name() string { return "system-beep" }

func (SystemBeep) Probe() error {
	if err := procBeep.Find(); err != nil {
		return ErrUnavailable
	}
	return nil
}

func (SystemBeep) Beep(frequencyHz int, duration time.Duration) error {
	r, _, err := procBeep.Call(uintptr(frequencyHz), uintptr(duration.Milliseconds()))
	if r == 0 {
		return err
	}
	return nil
}
