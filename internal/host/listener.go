package host

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/vanthinh296/say-function/internal/gesture"
	"go.uber.org/zap"
)

var ErrListenerUnavailable = errors.New("host: keyboard listener unavailable on this platform")

// Listener источник жестов.
type Listener interface {
	// Run публикует жесты в out до отмены контекста или конца ввода.
	Run(ctx context.Context, chords []string, out chan<- gesture.Gesture) error
}

// LineListener читает аккорды построчно (например, "ctrl+z") из reader.
// Повторная отправка такого жеста только логируется: реального приложения за ним нет.
type LineListener struct {
	r      io.Reader
	logger *zap.SugaredLogger
}

func NewLineListener(r io.Reader, logger *zap.SugaredLogger) *LineListener {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LineListener{r: r, logger: logger}
}

func (l *LineListener) Run(ctx context.Context, _ []string, out chan<- gesture.Gesture) error {
	sc := bufio.NewScanner(l.r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g, err := gesture.NewChord(line, func() error {
			l.logger.Debugw("Gesture passed through", "gesture", line)
			return nil
		})
		if err != nil {
			l.logger.Warnw("Skipping invalid chord", "line", line, "error", err)
			continue
		}
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case out <- g:
		}
	}
	return sc.Err()
}

// offer отдаёт жест диспетчеру без блокировки. Если очередь заполнена, аккорд
// сразу уходит в приложение, чтобы нативное действие не потерялось.
func offer(out chan<- gesture.Gesture, g gesture.Gesture, logger *zap.SugaredLogger) bool {
	select {
	case out <- g:
		return true
	default:
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ids := g.Identifiers()
	logger.Warnw("Gesture queue full, passing chord through", "gesture", ids)
	if err := g.Send(); err != nil {
		logger.Warnw("Failed to pass chord through", "gesture", ids, "error", err)
	}
	return false
}
