package app

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// runWatch renders once, then re-renders whenever the input file is written.
// The watch is placed on the containing directory because many editors save
// by replacing the file, which drops a watch set on the file itself. Bursts
// of write events are debounced.
func (a *App) runWatch() error {
	if err := a.renderOnce(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewOperationError("watch", a.opts.InputPath, err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(a.opts.InputPath)
	if err != nil {
		return NewOperationError("watch", a.opts.InputPath, err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return NewOperationError("watch", filepath.Dir(target), err)
	}

	log := a.logger.WithComponent("watch")
	log.Info("watching %s", a.opts.InputPath)

	debounce := time.Duration(a.cfg.DebounceMS) * time.Millisecond
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-a.done:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !eventTouches(event, target) {
				continue
			}
			log.Debug("change event: %s", event)
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)

		case <-timer.C:
			if err := a.renderOnce(); err != nil {
				log.Error("re-render failed: %v", err)
				continue
			}
			log.Info("re-rendered %s", a.opts.InputPath)
		}
	}
}

// eventTouches reports whether a write-like event concerns the target file.
func eventTouches(event fsnotify.Event, target string) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return abs == target
}
