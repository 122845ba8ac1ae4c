package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/vanthinh296/say-function/internal/config"
	"github.com/vanthinh296/say-function/internal/gesture"
	"github.com/vanthinh296/say-function/internal/host"
	"github.com/vanthinh296/say-function/internal/plugin"
	"github.com/vanthinh296/say-function/internal/service/notify"
	"github.com/vanthinh296/say-function/internal/service/speech"
	"github.com/vanthinh296/say-function/internal/service/tts/google"
	"github.com/vanthinh296/say-function/internal/service/tts/player"
	"github.com/vanthinh296/say-function/internal/service/tts/yandex"
	"github.com/vanthinh296/say-function/internal/settings"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	var (
		logger *zap.Logger
		err    error
	)
	if cfg.DebugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, sugar); err != nil && !errors.Is(err, context.Canceled) {
		sugar.Errorw("Say Function stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, sugar *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sugar.Infow("Starting Say Function",
		"DebugMode", cfg.DebugMode,
		"Secure", cfg.Secure,
		"SpeechService", cfg.SpeechService,
	)

	store, err := settings.Open(cfg.SettingsPath, sugar)
	if err != nil {
		return err
	}

	// Звуковой бэкенд выбирается один раз: сгенерированные тоны, затем системный сигнал
	soundLibraries := notify.SystemBeep{}.Probe() == nil
	backend := notify.Select(sugar,
		notify.NewGenerator(player.NewWithVolume(cfg.ToneVolumeDB)),
		notify.SystemBeep{},
	)
	notifier := notify.NewNotifier(sugar, store, backend)

	speaker, closeSpeaker := newSpeaker(ctx, cfg, sugar)
	defer closeSpeaker()

	userMap, err := gesture.LoadMap(cfg.UserGesturesPath)
	if err != nil {
		return err
	}
	// Локальная таблица пуста: на рабочем столе нет слоёв перехвата со своими скриптами
	forwarder := gesture.NewForwarder(userMap, gesture.NewMap(), host.DesktopFocus{}, sugar)

	rt := host.NewRuntime(sugar)
	registry := settings.NewRegistry()
	panel := settings.NewPanel(store, soundLibraries)

	p, err := plugin.New(plugin.Deps{
		Logger:    sugar,
		Secure:    cfg.Secure,
		Binder:    rt,
		Panels:    registry,
		Panel:     panel,
		Forwarder: forwarder,
		Speaker:   speaker,
		Notifier:  notifier,
	})
	if err != nil {
		return err
	}
	defer p.Terminate()

	if cfg.ListBindings {
		for _, b := range rt.Describe() {
			fmt.Printf("%-16s %-20s %s\n", b.Chord, b.Name, b.Description)
		}
		return nil
	}
	if cfg.SetPlaySounds != "" {
		return savePlaySounds(registry, cfg.SetPlaySounds)
	}
	if !p.Active() {
		sugar.Infow("Nothing to listen for, exiting")
		return nil
	}

	if cfg.WatchSettings && cfg.SettingsPath != "" {
		if w, err := settings.NewWatcher(store); err != nil {
			sugar.Warnw("Settings watcher unavailable", "error", err)
		} else if err := w.Start(); err != nil {
			sugar.Warnw("Settings watcher failed to start", "error", err)
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	listener, err := host.NewHotkeyListener(sugar)
	if errors.Is(err, host.ErrListenerUnavailable) {
		sugar.Infow("Global hotkeys unavailable, reading chords from stdin")
		listener = host.NewLineListener(os.Stdin, sugar)
	} else if err != nil {
		return err
	}

	gestures := make(chan gesture.Gesture, 64)
	listenErr := make(chan error, 1)
	go func() {
		err := listener.Run(ctx, rt.Chords(), gestures)
		close(gestures)
		listenErr <- err
	}()

	if err := rt.Run(ctx, gestures); err != nil {
		return err
	}
	return <-listenErr
}

// newSpeaker создаёт сервис речи по конфигурации; для TTS запускает очередь синтеза.
func newSpeaker(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) (plugin.Speaker, func()) {
	switch cfg.SpeechService {
	case config.SpeechGoogle:
		client := google.New(cfg.GoogleTTS, player.New(), sugar)
		q := speech.NewQueue(client, cfg.SpeechQueue, sugar)
		go func() { _ = q.Run(ctx) }()
		return q, func() { _ = client.Close() }
	case config.SpeechYandex:
		// Громкость Yandex 0-100 переводим в dB для плеера
		v := max(0, min(100, cfg.YandexTTS.Volume))
		client := yandex.New(cfg.YandexTTS, player.NewWithVolume(float64(v-100)/5.0))
		q := speech.NewQueue(client, cfg.SpeechQueue, sugar)
		go func() { _ = q.Run(ctx) }()
		return q, func() {}
	default:
		return speech.NewLog(sugar, os.Stdout), func() {}
	}
}

// savePlaySounds сохраняет флажок через зарегистрированные панели настроек.
func savePlaySounds(registry *settings.Registry, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("set-play-sounds: %w", err)
	}
	panels := registry.Panels()
	if len(panels) == 0 {
		return errors.New("set-play-sounds: settings panel not available in secure mode")
	}
	for _, p := range panels {
		if err := p.Save(v); err != nil {
			return err
		}
		label, checked := p.Checkbox()
		fmt.Printf("%s: %s = %t\n", p.Title(), label, checked)
		if note := p.Note(); note != "" {
			fmt.Println(note)
		}
	}
	return nil
}
