package notify

import (
	"errors"
	"time"

	"github.com/vanthinh296/say-function/internal/service/tts/player"
	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("notify: sound backend unavailable")

// ToneBackend единый интерфейс воспроизведения тона.
type ToneBackend interface {
	Name() string
	Beep(frequencyHz int, duration time.Duration) error
}

// Prober реализуют бэкенды, доступность которых проверяется при старте.
type Prober interface {
	Probe() error
}

// Select выбирает первый доступный бэкенд; если доступных нет — NoOp.
func Select(logger *zap.SugaredLogger, candidates ...ToneBackend) ToneBackend {
	for _, b := range candidates {
		if b == nil {
			continue
		}
		if p, ok := b.(Prober); ok {
			if err := p.Probe(); err != nil {
				if logger != nil {
					logger.Infow("Sound backend unavailable", "backend", b.Name(), "error", err)
				}
				continue
			}
		}
		if logger != nil {
			logger.Infow("Sound backend selected", "backend", b.Name())
		}
		return b
	}
	if logger != nil {
		logger.Warnw("No sound backend available, tones disabled")
	}
	return NoOp{}
}

// Generator генерирует тоны через звуковое устройство.
type Generator struct {
	player *player.Default
}

func NewGenerator(p *player.Default) *Generator {
	if p == nil {
		p = player.New()
	}
	return &Generator{player: p}
}

func (g *Generator) Name() string { return "tones" }

func (g *Generator) Probe() error { return g.player.Probe() }

func (g *Generator) Beep(frequencyHz int, duration time.Duration) error {
	return g.player.Tone(frequencyHz, duration)
}

// NoOp ничего не проигрывает.
type NoOp struct{}

func (NoOp) Name() string                   { return "none" }
func (NoOp) Beep(int, time.Duration) error { return nil }
