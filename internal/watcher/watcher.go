// Package watcher reports directories whose content changed on disk.
package watcher

import (
	"io/fs"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Event lists the directories that changed during one debounce window.
type Event struct {
	Dirs []string
}

// Watcher wraps fsnotify with per-directory coalescing. Events are only
// delivered on the channel; consumers apply them on their own goroutine.
type Watcher struct {
	fsw *fsnotify.Watcher
	deb *Debouncer
	log *logrus.Entry

	mu      sync.Mutex
	pending map[string]struct{}
	watched map[string]struct{}

	out       chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func New(debounce time.Duration, log *logrus.Entry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	w := &Watcher{
		fsw:     fsw,
		deb:     NewDebouncer(debounce),
		log:     log,
		pending: map[string]struct{}{},
		watched: map[string]struct{}{},
		out:     make(chan Event, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers coalesced change notifications.
func (w *Watcher) Events() <-chan Event { return w.out }

// Done is closed by Close. Readers of Events select on it to stop waiting.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// AddTree watches dir and every directory below it.
func (w *Watcher) AddTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			w.log.WithError(err).WithField("dir", p).Debug("skip unwatchable directory")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return w.add(p)
	})
}

func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	_, ok := w.watched[dir]
	w.mu.Unlock()
	if ok {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.mu.Lock()
	w.watched[dir] = struct{}{}
	w.mu.Unlock()
	return nil
}

// Watched returns the watched directories in sorted order.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.watched))
	for d := range w.watched {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.deb.Cancel()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) {
		return
	}
	if ev.Has(fsnotify.Create) {
		// New sub-directories are watched too; errors mean it was a file.
		_ = w.AddTree(ev.Name)
	}
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.watched, ev.Name)
		w.mu.Unlock()
	}
	w.mu.Lock()
	w.pending[filepath.Dir(ev.Name)] = struct{}{}
	w.mu.Unlock()
	w.deb.Trigger(w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	dirs := make([]string, 0, len(w.pending))
	for d := range w.pending {
		dirs = append(dirs, d)
	}
	w.pending = map[string]struct{}{}
	w.mu.Unlock()
	if len(dirs) == 0 {
		return
	}
	slices.Sort(dirs)
	select {
	case w.out <- Event{Dirs: dirs}:
	case <-w.done:
	}
}
