package player

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Частота дискретизации звукового устройства. Всё, что звучит иначе, ресемплируется.
const ToneSampleRate = beep.SampleRate(44100)

// Качество ресемплинга для декодированной речи
const resampleQuality = 4

var ErrUnsupportedFormat = errors.New("unsupported format for direct playback; use mp3 or wav")

// speaker в beep один на процесс: повторный Init закрывает устройство и сбрасывает микшер,
// поэтому инициализируем его ровно один раз для всех плееров.
var device struct {
	mu          sync.Mutex
	initialized bool
}

// speakerInit подменяется в тестах
var speakerInit = speaker.Init

// Player воспроизводит аудио потоком в зависимости от формата.
type Player interface {
	Play(format string, r io.ReadCloser) error
}

// Default реализует Player и поддерживает mp3 и wav, а также короткие синусоидальные тоны.
type Default struct {
	volumeDB float64
}

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{volumeDB: 0} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

func (d *Default) Play(format string, r io.ReadCloser) error {
	defer r.Close()
	var (
		streamer beep.StreamSeekCloser
		f        beep.Format
		err      error
	)
	switch format {
	case "wav", "WAV":
		streamer, f, err = wav.Decode(r)
	case "mp3", "MP3":
		streamer, f, err = mp3.Decode(r)
	default:
		return ErrUnsupportedFormat
	}
	if err != nil {
		return err
	}
	defer streamer.Close()
	return d.playStream(toDevice(f.SampleRate, streamer))
}

// Tone синхронно проигрывает синусоидальный тон заданной частоты и длительности.
func (d *Default) Tone(frequencyHz int, duration time.Duration) error {
	if frequencyHz <= 0 {
		return fmt.Errorf("player: invalid tone frequency %d", frequencyHz)
	}
	if duration <= 0 {
		return nil
	}
	n := ToneSampleRate.N(duration)
	return d.playStream(beep.Take(n, Sine(ToneSampleRate, frequencyHz)))
}

// Probe проверяет, что звуковое устройство доступно.
func (d *Default) Probe() error {
	return ensureDevice()
}

func (d *Default) playStream(s beep.Streamer) error {
	if err := ensureDevice(); err != nil {
		return err
	}

	vol := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   d.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}

// ensureDevice инициализирует speaker при первом обращении; после ошибки пробуем снова.
func ensureDevice() error {
	device.mu.Lock()
	defer device.mu.Unlock()
	if device.initialized {
		return nil
	}
	if err := speakerInit(ToneSampleRate, ToneSampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("player: speaker init: %w", err)
	}
	device.initialized = true
	return nil
}

// toDevice приводит поток к частоте устройства.
func toDevice(sr beep.SampleRate, s beep.Streamer) beep.Streamer {
	if sr == ToneSampleRate {
		return s
	}
	return beep.Resample(resampleQuality, sr, ToneSampleRate, s)
}

// Sine бесконечный синусоидальный поток; ограничивать через beep.Take.
func Sine(sr beep.SampleRate, frequencyHz int) beep.Streamer {
	step := 2 * math.Pi * float64(frequencyHz) / float64(sr)
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.5 * math.Sin(phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		return len(samples), true
	})
}
