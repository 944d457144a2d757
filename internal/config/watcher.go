package config

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"carousel/internal/eventbus"
)

// reloadDelay coalesces the burst of events editors produce on save
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a deck file when it changes on disk
type Watcher struct {
	path    string
	svc     ConfigService
	bus     eventbus.EventBus
	logger  *log.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher watches the directory holding path so that editors which
// replace the file on save are still observed
func NewWatcher(path string, svc ConfigService, bus eventbus.EventBus, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{path: abs, svc: svc, bus: bus, logger: logger.WithPrefix("watcher"), watcher: fsw}, nil
}

// Run delivers every successfully reparsed config to onChange until ctx is
// done. Parse failures are published as ErrorEvent and the old config stays.
func (w *Watcher) Run(ctx context.Context, onChange func(*Config)) error {
	defer w.watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(reloadDelay)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-pending:
			pending = nil
			w.reload(onChange)
		}
	}
}

func (w *Watcher) reload(onChange func(*Config)) {
	cfg, err := w.svc.LoadFromPath(w.path)
	if err != nil {
		w.logger.Error("reload failed", "path", w.path, "err", err)
		if w.bus != nil {
			w.bus.Publish(eventbus.ErrorEvent{Message: "deck reload failed", Err: err})
		}
		return
	}
	w.logger.Info("deck reloaded", "path", w.path, "slides", len(cfg.Slides))
	if w.bus != nil {
		w.bus.Publish(eventbus.ConfigChangedEvent{Path: w.path, Slides: len(cfg.Slides)})
	}
	onChange(cfg)
}
