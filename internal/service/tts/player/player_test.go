package player

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain считает сэмплы потока и пиковую амплитуду.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			assert.Equal(t, smp[0], smp[1])
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

// fakeDevice подменяет инициализацию speaker и считает вызовы.
func fakeDevice(t *testing.T, err error) *int {
	t.Helper()
	calls := 0
	prev := speakerInit
	speakerInit = func(sr beep.SampleRate, bufferSize int) error {
		calls++
		assert.Equal(t, ToneSampleRate, sr)
		return err
	}
	device.initialized = false
	t.Cleanup(func() {
		speakerInit = prev
		device.initialized = false
	})
	return &calls
}

func TestSineWaveform(t *testing.T) {
	const sr = beep.SampleRate(8000)
	total, peak := drain(t, beep.Take(sr.N(10*time.Millisecond), Sine(sr, 1000)))
	assert.Equal(t, 80, total)
	assert.InDelta(t, 0.5, peak, 0.01)
}

func TestPlayRejectsUnknownFormat(t *testing.T) {
	err := New().Play("ogg", io.NopCloser(strings.NewReader("")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToneValidation(t *testing.T) {
	assert.Error(t, New().Tone(0, 1))
	assert.NoError(t, New().Tone(440, 0))
}

func TestPlayersShareOneDevice(t *testing.T) {
	calls := fakeDevice(t, nil)

	tones := NewWithVolume(-6)
	speech := New()
	require.NoError(t, tones.Probe())
	require.NoError(t, speech.Probe())
	require.NoError(t, tones.Probe())

	assert.Equal(t, 1, *calls)
}

func TestDeviceInitRetriedAfterFailure(t *testing.T) {
	errNoDevice := errors.New("no device")
	calls := fakeDevice(t, errNoDevice)

	assert.ErrorIs(t, New().Probe(), errNoDevice)
	assert.ErrorIs(t, New().Tone(440, time.Millisecond), errNoDevice)
	assert.Equal(t, 2, *calls)
}

func TestSpeechResampledToDeviceRate(t *testing.T) {
	// 24 кГц речь длительностью 100 мс должна занять 100 мс и на устройстве 44.1 кГц
	const speechRate = beep.SampleRate(24000)
	src := beep.Take(speechRate.N(100*time.Millisecond), Sine(speechRate, 500))

	total, _ := drain(t, toDevice(speechRate, src))
	assert.InDelta(t, ToneSampleRate.N(100*time.Millisecond), total, 10)

	same, _ := drain(t, toDevice(ToneSampleRate, beep.Take(80, Sine(ToneSampleRate, 500))))
	assert.Equal(t, 80, same)
}
