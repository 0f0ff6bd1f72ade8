package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/dotscreen"
)

// debounceDelay coalesces the bursts of write events editors and atomic
// renames generate into one reload.
const debounceDelay = 250 * time.Millisecond

// debouncer fires its callback once per quiet period.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fire  func()
}

func newDebouncer(delay time.Duration, fire func()) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Reset(d.delay)
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fire()
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Watch reloads path on every change and hands the parsed config to onLoad
// until ctx is cancelled. Parse or validation failures are logged and
// skipped; the previous configuration stays active.
//
// The parent directory is watched rather than the file itself, so editors
// that replace the file with a rename keep triggering reloads.
func Watch(ctx context.Context, path string, onLoad func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: creating watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config: watching %s: %w", dir, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolving %s: %w", path, err)
	}

	db := newDebouncer(debounceDelay, func() {
		cfg, err := Load(path)
		if err != nil {
			dotscreen.Logger().Warn("config: reload failed, keeping previous", "path", path, "error", err)
			return
		}
		dotscreen.Logger().Info("config: reloaded", "path", path)
		onLoad(cfg)
	})
	defer db.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			evAbs, err := filepath.Abs(ev.Name)
			if err != nil || evAbs != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				db.trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			dotscreen.Logger().Warn("config: watch error", "error", err)
		}
	}
}
