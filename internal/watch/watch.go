// Package watch re-runs the audit when the documentation tree changes.
// Events are debounced so a burst of editor saves triggers one re-audit.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is the debounce window between the last event and the re-audit.
const DefaultQuiet = 500 * time.Millisecond

var skipDirs = map[string]bool{
	".git":          true,
	".github":       true,
	"node_modules":  true,
	".devcontainer": true,
}

// Run watches root recursively and calls onChange after each quiet period
// with markdown activity. Blocks until ctx is cancelled.
func Run(ctx context.Context, root string, quiet time.Duration, onChange func()) error {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirs(w, root); err != nil {
		return err
	}

	timer := time.NewTimer(quiet)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if !skipDirs[filepath.Base(ev.Name)] {
						_ = addDirs(w, ev.Name)
					}
					continue
				}
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			// collapse bursts: restart the quiet window on every event
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(quiet)
			pending = true
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		case <-timer.C:
			pending = false
			onChange()
		}
	}
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}
