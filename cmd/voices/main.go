package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

// Небольшая утилита: печатает голоса Google TTS для языка, чтобы выбрать значение -google-tts-voice.
// Учётные данные берутся по ADC (GOOGLE_APPLICATION_CREDENTIALS).
func main() {
	lang := flag.String("language", "en-US", "язык голосов, напр. en-US или vi-VN")
	creds := flag.String("credentials", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), "путь к service-account.json")
	flag.Parse()

	if *creds != "" {
		_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", *creds)
	}

	ctx, cancel := context.WithTimeoutCause(context.Background(), 15*time.Second, errors.New("google tts voices request timeout"))
	defer cancel()

	if err := listVoices(ctx, *lang); err != nil {
		fmt.Println("ошибка:", err)
		os.Exit(1)
	}
}

type voice struct {
	Name                   string   `json:"name"`
	LanguageCodes          []string `json:"languageCodes"`
	SsmlGender             string   `json:"ssmlGender"`
	NaturalSampleRateHertz int      `json:"naturalSampleRateHertz"`
}

func listVoices(ctx context.Context, lang string) error {
	// Получим учётные данные по ADC и токен для вызова REST API.
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return fmt.Errorf("не удалось найти учётные данные Google (ADC): %w", err)
	}
	tok, err := creds.TokenSource.Token()
	if err != nil {
		return fmt.Errorf("не удалось получить токен доступа Google: %w", err)
	}

	u := "https://texttospeech.googleapis.com/v1/voices?languageCode=" + url.QueryEscape(lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	hc := &http.Client{Timeout: 20 * time.Second}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("google tts voices: status=%d", resp.StatusCode)
	}

	var payload struct {
		Voices []voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("не удалось распарсить ответ Google TTS Voices: %w", err)
	}
	for _, v := range payload.Voices {
		fmt.Printf("%-28s %-8s %6d Hz %v\n", v.Name, v.SsmlGender, v.NaturalSampleRateHertz, v.LanguageCodes)
	}
	return nil
}
