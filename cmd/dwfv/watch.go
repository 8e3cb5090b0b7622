package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// follow re-runs the search every time the trace file settles after a write.
// Watching the parent directory instead of the file itself survives the
// rename-and-replace pattern most waveform dumpers use.
func follow(path, expr string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	if err := searchOnce(path, expr); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	debounce := cfg.Follow.Debounce()
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-stop:
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			slog.Debug("trace changed", "file", path, "op", ev.Op)
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)

		case <-timer.C:
			if err := searchOnce(path, expr); err != nil {
				// A partially written dump is expected mid-update;
				// keep watching and retry on the next settle.
				slog.Warn("search failed", "err", err)
			}
		}
	}
}

func searchOnce(path, expr string) error {
	w, err := loadTrace(path)
	if err != nil {
		return err
	}
	fmt.Printf("-- %s (end: %d)\n", time.Now().Format(time.TimeOnly), w.End())
	return runSearch(os.Stdout, w, expr)
}
