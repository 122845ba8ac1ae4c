package google

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/vanthinh296/say-function/internal/config"
	"github.com/vanthinh296/say-function/internal/service/tts/player"
	"go.uber.org/zap"
)

// Client реализует синтез речи через Google Cloud Text-to-Speech и воспроизводит результат.
type Client struct {
	cfg    config.GoogleTTSConfig
	player player.Player
	logger *zap.SugaredLogger

	// SDK клиент создаётся при первом запросе и живёт до Close
	mu  sync.Mutex
	sdk *gctts.Client
}

func New(cfg config.GoogleTTSConfig, p player.Player, logger *zap.SugaredLogger) *Client {
	return &Client{cfg: cfg, player: p, logger: logger}
}

// Synthesize выполняет запрос к Google TTS и воспроизводит MP3.
func (c *Client) Synthesize(ctx context.Context, text string) error {
	sdk, err := c.client(ctx)
	if err != nil {
		return err
	}

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: text}},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: c.cfg.Language,
			Name:         c.cfg.Voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
			SpeakingRate:  c.cfg.SpeakingRate,
			Pitch:         c.cfg.Pitch,
			VolumeGainDb:  c.cfg.VolumeGainDb,
		},
	}
	started := time.Now()
	resp, err := sdk.SynthesizeSpeech(ctx, req)
	if err != nil {
		return err
	}
	if c.logger != nil {
		c.logger.Debugw("Google TTS synthesize completed", "took", time.Since(started).String())
	}

	r := io.NopCloser(bytes.NewReader(resp.GetAudioContent()))
	return c.player.Play("mp3", r)
}

func (c *Client) client(ctx context.Context) (*gctts.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sdk != nil {
		return c.sdk, nil
	}
	sdk, err := gctts.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	c.sdk = sdk
	return sdk, nil
}

// Close закрывает SDK клиент, если он был создан.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sdk == nil {
		return nil
	}
	err := c.sdk.Close()
	c.sdk = nil
	return err
}
