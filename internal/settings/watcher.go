package settings

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher перечитывает Store при внешнем изменении файла настроек.
type Watcher struct {
	watcher *fsnotify.Watcher
	store   *Store
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
	running bool
}

func NewWatcher(store *Store) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: w,
		store:   store,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Start начинает наблюдение. Следим за каталогом: так надёжнее для атомарной записи через rename.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.store.Path())); err != nil {
		return err
	}
	w.running = true
	go w.watch()
	return nil
}

func (w *Watcher) watch() {
	defer close(w.stopped)
	filename := filepath.Base(w.store.Path())
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if err := w.store.Reload(); err != nil {
					w.store.logger.Warnw("Failed to reload settings", "path", w.store.Path(), "error", err)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.store.logger.Warnw("Settings watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// Stop останавливает наблюдение; повторный вызов безопасен.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)
	<-w.stopped
	return w.watcher.Close()
}
