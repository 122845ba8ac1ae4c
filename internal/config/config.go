package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Сервисы речи
const (
	SpeechLog    = "log"
	SpeechGoogle = "google"
	SpeechYandex = "yandex"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` // Режим дебага
	// Ограниченный режим хоста: плагин не регистрирует ни обработчиков, ни панели настроек
	Secure bool `env:"SAY_FUNCTION_SECURE"`

	SettingsPath     string `env:"SETTINGS_PATH"`      // TOML файл с настройками плагина (playSounds)
	UserGesturesPath string `env:"USER_GESTURES_PATH"` // TOML файл с пользовательскими привязками жестов
	WatchSettings    bool   `env:"WATCH_SETTINGS"`     // Перечитывать настройки при изменении файла

	// Громкость сгенерированных тонов в dB (отрицательные — тише)
	ToneVolumeDB float64 `env:"TONE_VOLUME_DB"`

	SpeechService string `env:"SPEECH_SERVICE"`    // log|google|yandex
	SpeechQueue   int    `env:"SPEECH_QUEUE_SIZE"` // Ёмкость очереди фраз для синтеза

	YandexTTS YandexTTSConfig
	GoogleTTS GoogleTTSConfig

	// Разовые команды CLI
	ListBindings  bool   `env:"LIST_BINDINGS"`   // Вывести привязки жестов и выйти
	SetPlaySounds string `env:"SET_PLAY_SOUNDS"` // true|false — сохранить настройку через панель и выйти
}

// YandexTTSConfig конфигурация для синтеза речи через Yandex SpeechKit.
type YandexTTSConfig struct {
	APIKey  string `env:"YC_TTS_API_KEY"` // Ключ берём из .env/ENV. Если пуст — при использовании будет ошибка
	Voice   string `env:"YC_TTS_VOICE"`
	Format  string `env:"YC_TTS_FORMAT"` // mp3|wav
	Speed   string `env:"YC_TTS_SPEED"`
	Emotion string `env:"YC_TTS_EMOTION"`
	Volume  int    `env:"YC_TTS_VOLUME"` // 0-100; 100 — не изменять громкость
}

// GoogleTTSConfig конфигурация для синтеза речи через Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	// Путь к файлу ключа сервисного аккаунта. Фактически читается из ENV GOOGLE_APPLICATION_CREDENTIALS.
	CredentialsPath string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Language        string  `env:"GOOGLE_TTS_LANGUAGE"`
	Voice           string  `env:"GOOGLE_TTS_VOICE"`
	SpeakingRate    float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
	Pitch           float64 `env:"GOOGLE_TTS_PITCH"`
	VolumeGainDb    float64 `env:"GOOGLE_TTS_VOLUME_DB"`
}

var (
	ErrUnknownSpeechService = errors.New("config: unknown speech service")
	ErrMissingCredentials   = errors.New("config: google credentials not set")
)

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:        false,
		Secure:           false,
		SettingsPath:     "sayFunction.toml",
		UserGesturesPath: "gestures.toml",
		WatchSettings:    true,
		ToneVolumeDB:     0,
		SpeechService:    SpeechLog,
		SpeechQueue:      8,
		YandexTTS: YandexTTSConfig{
			Voice:   "jane",
			Format:  "mp3",
			Speed:   "1.3",
			Emotion: "neutral",
			Volume:  100,
		},
		GoogleTTS: GoogleTTSConfig{
			CredentialsPath: "service-account.json",
			Language:        "en-US",
			Voice:           "en-US-Standard-C",
			SpeakingRate:    1.3,
		},
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	_ = env.Parse(cfg)

	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// BindFlags регистрирует флаги поверх текущих значений.
func (cfg *Config) BindFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага (подробные логи)")
	fs.BoolVar(&cfg.Secure, "secure", cfg.Secure, "ограниченный режим: не регистрировать обработчики и панель настроек")
	fs.StringVar(&cfg.SettingsPath, "settings-path", cfg.SettingsPath, "путь к TOML файлу настроек плагина")
	fs.StringVar(&cfg.UserGesturesPath, "user-gestures-path", cfg.UserGesturesPath, "путь к TOML файлу пользовательских привязок жестов")
	fs.BoolVar(&cfg.WatchSettings, "watch-settings", cfg.WatchSettings, "перечитывать настройки при изменении файла")
	fs.Float64Var(&cfg.ToneVolumeDB, "tone-volume-db", cfg.ToneVolumeDB, "громкость тонов в dB (отрицательные — тише)")
	fs.StringVar(&cfg.SpeechService, "speech-service", cfg.SpeechService, "сервис речи: log|google|yandex")
	fs.IntVar(&cfg.SpeechQueue, "speech-queue-size", cfg.SpeechQueue, "ёмкость очереди фраз для синтеза")
	fs.BoolVar(&cfg.ListBindings, "list-bindings", cfg.ListBindings, "вывести привязки жестов и выйти")
	fs.StringVar(&cfg.SetPlaySounds, "set-play-sounds", cfg.SetPlaySounds, "сохранить настройку playSounds (true|false) и выйти")
	// Параметры Yandex TTS
	fs.StringVar(&cfg.YandexTTS.APIKey, "yc-tts-api-key", cfg.YandexTTS.APIKey, "API ключ Yandex SpeechKit TTS (перекрывает ENV)")
	fs.StringVar(&cfg.YandexTTS.Voice, "yc-tts-voice", cfg.YandexTTS.Voice, "голос для синтеза")
	fs.StringVar(&cfg.YandexTTS.Format, "yc-tts-format", cfg.YandexTTS.Format, "формат аудио (mp3|wav)")
	fs.StringVar(&cfg.YandexTTS.Speed, "yc-tts-speed", cfg.YandexTTS.Speed, "скорость речи (1.0 по умолчанию)")
	fs.StringVar(&cfg.YandexTTS.Emotion, "yc-tts-emotion", cfg.YandexTTS.Emotion, "эмоциональная окраска (neutral|good|evil)")
	fs.IntVar(&cfg.YandexTTS.Volume, "yc-tts-volume", cfg.YandexTTS.Volume, "громкость 0-100 (100 — без изменений)")
	// Параметры Google TTS
	fs.StringVar(&cfg.GoogleTTS.CredentialsPath, "google-tts-credentials", cfg.GoogleTTS.CredentialsPath, "путь к service-account.json (также читается из ENV GOOGLE_APPLICATION_CREDENTIALS)")
	fs.StringVar(&cfg.GoogleTTS.Language, "google-tts-language", cfg.GoogleTTS.Language, "язык синтеза, напр. en-US")
	fs.StringVar(&cfg.GoogleTTS.Voice, "google-tts-voice", cfg.GoogleTTS.Voice, "имя голоса, напр. en-US-Standard-C")
	fs.Float64Var(&cfg.GoogleTTS.SpeakingRate, "google-tts-speaking-rate", cfg.GoogleTTS.SpeakingRate, "скорость речи (1.0 по умолчанию)")
	fs.Float64Var(&cfg.GoogleTTS.Pitch, "google-tts-pitch", cfg.GoogleTTS.Pitch, "тон (полутоны), может быть отрицательным")
	fs.Float64Var(&cfg.GoogleTTS.VolumeGainDb, "google-tts-volume-db", cfg.GoogleTTS.VolumeGainDb, "усиление громкости (дБ), от -96.0 до +16.0")
}

// Validate проверяет выбранный сервис речи и готовит окружение для Google TTS.
// Если ENV пуст, но в конфиге указан путь — устанавливаем ENV.
func (cfg *Config) Validate() error {
	cfg.SpeechService = strings.ToLower(strings.TrimSpace(cfg.SpeechService))
	if cfg.SpeechService == "" {
		cfg.SpeechService = SpeechLog
	}
	if cfg.SpeechQueue <= 0 {
		cfg.SpeechQueue = 8
	}
	switch cfg.SpeechService {
	case SpeechLog, SpeechYandex:
		return nil
	case SpeechGoogle:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSpeechService, cfg.SpeechService)
	}

	cred := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if cred == "" {
		if cp := strings.TrimSpace(cfg.GoogleTTS.CredentialsPath); cp != "" {
			_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cp)
			cred = cp
		}
	}
	if cred == "" {
		return fmt.Errorf("%w; укажите ENV GOOGLE_APPLICATION_CREDENTIALS или флаг -google-tts-credentials", ErrMissingCredentials)
	}
	if _, err := os.Stat(cred); err != nil {
		return fmt.Errorf("google tts: файл ключа не найден: %s", cred)
	}
	return nil
}
