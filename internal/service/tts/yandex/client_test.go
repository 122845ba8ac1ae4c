package yandex

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanthinh296/say-function/internal/config"
)

type fakePlayer struct {
	format string
	body   string
}

func (p *fakePlayer) Play(format string, r io.ReadCloser) error {
	defer r.Close()
	b, err := io.ReadAll(r)
	p.format, p.body = format, string(b)
	return err
}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Api-Key secret", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Undo", r.PostForm.Get("text"))
		assert.Equal(t, "jane", r.PostForm.Get("voice"))
		assert.Equal(t, "wav", r.PostForm.Get("format"))
		_, _ = w.Write([]byte("AUDIO"))
	}))
	defer srv.Close()

	p := &fakePlayer{}
	cfg := config.YandexTTSConfig{APIKey: "secret", Voice: "jane", Format: "WAV", Speed: "1.0", Emotion: "neutral"}
	c := New(cfg, p).WithEndpoint(srv.URL, srv.Client())

	require.NoError(t, c.Synthesize(context.Background(), "Undo"))
	assert.Equal(t, "wav", p.format)
	assert.Equal(t, "AUDIO", p.body)
}

func TestSynthesizeErrors(t *testing.T) {
	c := New(config.YandexTTSConfig{}, &fakePlayer{})
	assert.ErrorIs(t, c.Synthesize(context.Background(), "Copy"), ErrEmptyAPIKey)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := &fakePlayer{}
	c = New(config.YandexTTSConfig{APIKey: "k", Format: "mp3"}, p).WithEndpoint(srv.URL, nil)
	err := c.Synthesize(context.Background(), "Copy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, p.format)
}
