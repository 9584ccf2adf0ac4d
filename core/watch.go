package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher calls OnChange after files below Root change. Bursts of events
// within Debounce collapse into one call.
type Watcher struct {
	Root     string
	Debounce time.Duration
	OnChange func()
}

func NewWatcher(root string, onChange func()) *Watcher {
	return &Watcher{Root: root, Debounce: 100 * time.Millisecond, OnChange: onChange}
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addTree(fw, w.Root); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addTree(fw, ev.Name)
				}
			}
			log.WithField("file", ev.Name).Debug("asset changed")
			pending = time.After(w.Debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch assets")
		case <-pending:
			pending = nil
			if w.OnChange != nil {
				w.OnChange()
			}
		}
	}
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
