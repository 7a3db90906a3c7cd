package cli

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// templateWatcher reports writes to one template file.
type templateWatcher struct {
	Changes <-chan struct{}

	w    *fsnotify.Watcher
	done chan struct{}
}

// watchTemplate watches the directory holding path, since editors often
// replace a file instead of writing it in place.
func watchTemplate(path string) (*templateWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)
	tw := &templateWatcher{Changes: changes, w: w, done: make(chan struct{})}
	go func() {
		defer close(tw.done)
		defer close(changes)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				// Coalesce bursts; one pending reload is enough.
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return tw, nil
}

// Close stops watching and closes Changes.
func (tw *templateWatcher) Close() error {
	err := tw.w.Close()
	<-tw.done
	return err
}
