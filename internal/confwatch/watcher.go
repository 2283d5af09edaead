// Package confwatch reloads the simplekit config file when it changes on disk.
package confwatch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/stlalpha/simplekit/internal/config"
	"github.com/stlalpha/simplekit/internal/logging"
)

// DefaultDebounce is how long a burst of writes must settle before reloading
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc receives each successfully reloaded configuration
type ReloadFunc func(cfg config.Config)

// LoadFunc reads the configuration again, e.g. a config.Loader's Load so
// flags bound to it keep winning over the file
type LoadFunc func() (config.Config, error)

// Watcher watches a config file for changes and hot-reloads it.
type Watcher struct {
	mu       sync.Mutex
	reloadMu sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	path     string
	debounce time.Duration
	load     LoadFunc
	onReload ReloadFunc
	log      *logrus.Entry
}

// New starts watching path. The containing directory is watched so editors
// that replace the file instead of writing it in place are still seen. A nil
// load reads path with config.Load.
func New(path string, debounce time.Duration, load LoadFunc, onReload ReloadFunc) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("no config file to watch")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if load == nil {
		load = func() (config.Config, error) { return config.Load(abs) }
	}

	w := &Watcher{
		watcher:  fw,
		done:     make(chan struct{}),
		path:     abs,
		debounce: debounce,
		load:     load,
		onReload: onReload,
		log:      logging.For("confwatch"),
	}
	w.log.Infof("Watching %s for config changes (auto-reload enabled)", abs)

	go w.loop(fw)
	return w, nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return
	}
	close(w.done)
	w.watcher.Close()
	w.watcher = nil
	w.log.Info("Configuration file watcher stopped")
}

func (w *Watcher) loop(fw *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("Config file watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	w.log.Infof("Config file change detected: %s", filepath.Base(w.path))
	cfg, err := w.load()
	if err != nil {
		w.log.WithError(err).Error("Failed to reload config, keeping previous settings")
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
	w.log.Info("Config reloaded successfully")
}
