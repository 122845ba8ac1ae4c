package yandex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/vanthinh296/say-function/internal/config"
	"github.com/vanthinh296/say-function/internal/service/tts/player"
)

const defaultEndpoint = "https://tts.api.cloud.yandex.net/speech/v1/tts:synthesize"

var ErrEmptyAPIKey = errors.New("yandex tts: empty API key (set YC_TTS_API_KEY in .env/ENV or pass via flag)")

// Client реализует синтез речи через Yandex SpeechKit и воспроизводит результат.
type Client struct {
	cfg      config.YandexTTSConfig
	endpoint string
	http     *http.Client
	player   player.Player
}

func New(cfg config.YandexTTSConfig, p player.Player) *Client {
	return &Client{cfg: cfg, endpoint: defaultEndpoint, http: http.DefaultClient, player: p}
}

// WithEndpoint подменяет адрес API (тесты, прокси).
func (c *Client) WithEndpoint(endpoint string, hc *http.Client) *Client {
	c.endpoint = endpoint
	if hc != nil {
		c.http = hc
	}
	return c
}

// Synthesize выполняет запрос к Yandex TTS и воспроизводит аудио.
func (c *Client) Synthesize(ctx context.Context, text string) error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return ErrEmptyAPIKey
	}
	format := strings.ToLower(c.cfg.Format)

	form := url.Values{}
	form.Set("text", text)
	form.Set("voice", c.cfg.Voice)
	form.Set("format", format)
	form.Set("speed", c.cfg.Speed)
	form.Set("emotion", strings.ToLower(c.cfg.Emotion))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Api-Key "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return fmt.Errorf("yandex tts error: status=%d, body=%s", resp.StatusCode, bytes.TrimSpace(b))
	}

	return c.player.Play(format, resp.Body)
}
