// Package watch reloads the platformer config file when it changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// DefaultDebounce groups the burst of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Reload carries the result of re-reading the config file.
type Reload struct {
	Path   string
	Config config.PlatformerConfig
	Err    error
}

// ConfigWatcher watches one config file and sends a Reload after it settles.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *log.Logger

	Reloads chan Reload

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New starts watching path. The parent directory is watched so that editors
// which replace the file on save are still seen. A nil logger disables logging.
func New(path string, debounce time.Duration, logger *log.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch: %s: %w", filepath.Dir(abs), err)
	}

	w := &ConfigWatcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		Reloads:  make(chan Reload, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Close stops watching and closes Reloads.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Reloads)
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer close(w.done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("config watcher error", "err", err)
			}

		case <-timer.C:
			cfg, err := config.LoadFile(w.path)
			if w.logger != nil {
				if err != nil {
					w.logger.Warn("config reload failed", "path", w.path, "err", err)
				} else {
					w.logger.Info("config reloaded", "path", w.path)
				}
			}
			w.send(Reload{Path: w.path, Config: cfg, Err: err})

		case <-w.closeCh:
			return
		}
	}
}

// send replaces an unread reload so consumers always see the latest file.
func (w *ConfigWatcher) send(r Reload) {
	for {
		select {
		case w.Reloads <- r:
			return
		case <-w.closeCh:
			return
		default:
		}
		select {
		case <-w.Reloads:
		default:
		}
	}
}
