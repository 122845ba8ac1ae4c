//go:build windows

package host

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"github.com/vanthinh296/say-function/internal/gesture"
	"go.uber.org/zap"
)

// Обёртки для функций, которых может не быть в lxn/win
var (
	user32               = syscall.NewLazyDLL("user32.dll")
	procRegisterHotKey   = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey = user32.NewProc("UnregisterHotKey")
)

const (
	modAlt      = 0x0001
	modControl  = 0x0002
	modShift    = 0x0004
	modWin      = 0x0008
	modNoRepeat = 0x4000

	// Повторная отправка аккорда: wParam — id хоткея
	wmResend = win.WM_APP + 1
	// Таймер повторной регистрации хоткея после отправки, мс
	reRegisterDelay = 50
	timerBase       = 0x1000
)

type hotkey struct {
	id    int32
	chord string
	mods  uint32
	vk    uint32
}

type hotkeyListener struct {
	logger *zap.SugaredLogger
}

// NewHotkeyListener перехватывает аккорды глобальными хоткеями Windows.
func NewHotkeyListener(logger *zap.SugaredLogger) (Listener, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &hotkeyListener{logger: logger}, nil
}

func (l *hotkeyListener) Run(ctx context.Context, chords []string, out chan<- gesture.Gesture) error {
	keys := make([]hotkey, 0, len(chords))
	for i, c := range chords {
		mods, vk, err := parseChord(c)
		if err != nil {
			return err
		}
		keys = append(keys, hotkey{id: int32(i + 1), chord: c, mods: mods, vk: vk})
	}

	// UI/WinAPI должен жить в закрепленном системном потоке
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	className := syscall.StringToUTF16Ptr("SayFunctionHiddenWindowClass")
	var hwnd win.HWND

	byID := func(id int32) (hotkey, bool) {
		if id < 1 || int(id) > len(keys) {
			return hotkey{}, false
		}
		return keys[id-1], true
	}

	var wc win.WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = syscall.NewCallback(func(h win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
		switch msg {
		case win.WM_HOTKEY:
			hk, ok := byID(int32(wParam))
			if !ok {
				return 0
			}
			g, err := gesture.NewChord(hk.chord, func() error {
				// отправка выполняется в потоке окна
				if win.PostMessage(h, wmResend, uintptr(hk.id), 0) == 0 {
					return fmt.Errorf("host: failed to post resend for %s", hk.chord)
				}
				return nil
			})
			if err != nil {
				return 0
			}
			offer(out, g, l.logger)
			return 0
		case wmResend:
			hk, ok := byID(int32(wParam))
			if !ok {
				return 0
			}
			// снимаем хоткей, иначе система снова перехватит отправленный аккорд
			_ = unregisterHotKey(h, hk.id)
			if err := sendChord(hk); err != nil {
				l.logger.Warnw("Failed to resend chord", "gesture", hk.chord, "error", err)
			}
			win.SetTimer(h, uintptr(timerBase+hk.id), reRegisterDelay, 0)
			return 0
		case win.WM_TIMER:
			hk, ok := byID(int32(wParam - timerBase))
			if !ok {
				return 0
			}
			win.KillTimer(h, wParam)
			if !registerHotKey(h, hk.id, hk.mods|modNoRepeat, hk.vk) {
				l.logger.Warnw("Failed to re-register hotkey", "gesture", hk.chord)
			}
			return 0
		case win.WM_DESTROY:
			win.PostQuitMessage(0)
			return 0
		}
		return win.DefWindowProc(h, msg, wParam, lParam)
	})
	wc.HInstance = win.GetModuleHandle(nil)
	wc.LpszClassName = className
	if win.RegisterClassEx(&wc) == 0 {
		// возможно, уже зарегистрирован — пробуем продолжить
	}

	hwnd = win.CreateWindowEx(
		0,
		className,
		syscall.StringToUTF16Ptr("SayFunctionHiddenWindow"),
		0,
		0, 0, 0, 0,
		0,
		0,
		wc.HInstance,
		nil,
	)
	if hwnd == 0 {
		return fmt.Errorf("host: failed to create hidden window")
	}

	for _, hk := range keys {
		if !registerHotKey(hwnd, hk.id, hk.mods|modNoRepeat, hk.vk) {
			l.logger.Warnw("Failed to register hotkey", "gesture", hk.chord)
		}
	}
	l.logger.Infow("Hotkeys registered", "count", len(keys))

	// Параллельно следим за ctx и закрываем окно
	go func() {
		<-ctx.Done()
		win.PostMessage(hwnd, win.WM_CLOSE, 0, 0)
	}()

	msg := new(win.MSG)
	for {
		r := win.GetMessage(msg, 0, 0, 0)
		if r == 0 || r == -1 { // WM_QUIT или ошибка
			break
		}
		win.TranslateMessage(msg)
		win.DispatchMessage(msg)
	}

	for _, hk := range keys {
		_ = unregisterHotKey(hwnd, hk.id)
	}
	win.DestroyWindow(hwnd)
	return context.Cause(ctx)
}

// parseChord переводит "kb:control+c" в модификаторы и виртуальный код клавиши.
func parseChord(chord string) (uint32, uint32, error) {
	parts := strings.Split(strings.TrimPrefix(chord, "kb:"), "+")
	var mods uint32
	for _, m := range parts[:len(parts)-1] {
		switch m {
		case "control":
			mods |= modControl
		case "shift":
			mods |= modShift
		case "alt":
			mods |= modAlt
		case "windows":
			mods |= modWin
		default:
			return 0, 0, fmt.Errorf("host: unsupported modifier %q in %s", m, chord)
		}
	}
	key := parts[len(parts)-1]
	if len(key) != 1 || !((key[0] >= 'a' && key[0] <= 'z') || (key[0] >= '0' && key[0] <= '9')) {
		return 0, 0, fmt.Errorf("host: unsupported key %q in %s", key, chord)
	}
	return mods, uint32(strings.ToUpper(key)[0]), nil
}

// sendChord эмулирует нажатие аккорда через SendInput.
func sendChord(hk hotkey) error {
	var modKeys []uint16
	if hk.mods&modControl != 0 {
		modKeys = append(modKeys, win.VK_CONTROL)
	}
	if hk.mods&modShift != 0 {
		modKeys = append(modKeys, win.VK_SHIFT)
	}
	if hk.mods&modAlt != 0 {
		modKeys = append(modKeys, win.VK_MENU)
	}
	if hk.mods&modWin != 0 {
		modKeys = append(modKeys, win.VK_LWIN)
	}

	inputs := make([]win.KEYBD_INPUT, 0, 2*len(modKeys)+2)
	key := func(vk uint16, up bool) win.KEYBD_INPUT {
		in := win.KEYBD_INPUT{Type: win.INPUT_KEYBOARD}
		in.Ki.WVk = vk
		if up {
			in.Ki.DwFlags = win.KEYEVENTF_KEYUP
		}
		return in
	}
	for _, m := range modKeys {
		inputs = append(inputs, key(m, false))
	}
	inputs = append(inputs, key(uint16(hk.vk), false), key(uint16(hk.vk), true))
	for i := len(modKeys) - 1; i >= 0; i-- {
		inputs = append(inputs, key(modKeys[i], true))
	}

	n := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0])))
	if int(n) != len(inputs) {
		return fmt.Errorf("host: SendInput sent %d of %d events", n, len(inputs))
	}
	return nil
}

func registerHotKey(hwnd win.HWND, id int32, modifiers uint32, vk uint32) bool {
	if procRegisterHotKey.Find() != nil {
		return false
	}
	r, _, _ := procRegisterHotKey.Call(uintptr(hwnd), uintptr(id), uintptr(modifiers), uintptr(vk))
	return r != 0
}

func unregisterHotKey(hwnd win.HWND, id int32) bool {
	if procUnregisterHotKey.Find() != nil {
		return false
	}
	r, _, _ := procUnregisterHotKey.Call(uintptr(hwnd), uintptr(id))
	return r != 0
}
