package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// debounce is the quiet period after the last event before a run.
const debounce = 100 * time.Millisecond

var watchLog = commonlog.GetLogger("loom.watch")

// watchFile calls run once, then again whenever path has been written and
// left alone for debounce, until ctx is done. The directory is watched so
// that editors replacing the file are seen too.
func watchFile(ctx context.Context, path string, w io.Writer, run func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	run()
	fmt.Fprintf(w, "[WATCH] watching %s\n", path)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			watchLog.Debugf("%s: %s", event.Op, event.Name)
			timer.Reset(debounce)
			pending = timer.C

		case <-pending:
			pending = nil
			fmt.Fprintf(w, "[WATCH] %s changed\n", path)
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Errorf("watcher error: %v", err)
		}
	}
}
