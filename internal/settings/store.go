// Package settings хранит пользовательские настройки плагина и описывает его панель настроек.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// Section имя раздела плагина в файле настроек.
const Section = "sayFunction"

type file struct {
	SayFunction section `toml:"sayFunction"`
}

type section struct {
	PlaySounds bool `toml:"playSounds"`
}

// Store — настройки плагина в TOML файле. Значение читается из памяти,
// запись сразу сохраняется на диск.
type Store struct {
	path   string
	logger *zap.SugaredLogger

	mu      sync.RWMutex
	current section
}

// Open загружает настройки. Отсутствующий файл — значения по умолчанию (playSounds=false).
// Пустой path — настройки только в памяти.
func Open(path string, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Store{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path путь к файлу настроек.
func (s *Store) Path() string { return s.path }

// PlaySounds читается при каждом уведомлении.
func (s *Store) PlaySounds() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.PlaySounds
}

// SetPlaySounds меняет значение и сохраняет файл.
func (s *Store) SetPlaySounds(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	next.PlaySounds = v
	if err := s.saveLocked(next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// Reload перечитывает файл настроек.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("settings: read %s: %w", s.path, err)
	}
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("settings: parse %s: %w", s.path, err)
	}
	s.mu.Lock()
	changed := s.current != f.SayFunction
	s.current = f.SayFunction
	s.mu.Unlock()
	if changed {
		s.logger.Infow("Settings reloaded", "path", s.path, "playSounds", f.SayFunction.PlaySounds)
	}
	return nil
}

func (s *Store) saveLocked(v section) error {
	if s.path == "" {
		return nil
	}
	data, err := toml.Marshal(file{SayFunction: v})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}
	// пишем через временный файл, чтобы наблюдатель не прочитал половину
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("settings: rename %s: %w", tmp, err)
	}
	return nil
}
