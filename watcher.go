package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kylesnowschwartz/qrlog/scan"
	"github.com/kylesnowschwartz/qrlog/store"
)

// watcherDebounce is the delay after the last store write before reloading.
// An add from another process touches a temp file, renames it, and on
// SQLite also writes the WAL; 500ms folds that into one reload.
const watcherDebounce = 500 * time.Millisecond

// storeUpdateMsg carries the full reloaded history after an external write.
type storeUpdateMsg struct {
	records []scan.Record
}

// watcherErrMsg reports errors from the watcher goroutine.
type watcherErrMsg struct {
	err error
}

// storeWatcher monitors the history backend on disk and pushes reloaded
// record lists through a channel, so `qrlog add` in another terminal shows
// up in an open browser.
//
// Reloads happen on the single run() goroutine. Timer callbacks send
// signals instead of calling methods directly.
type storeWatcher struct {
	ctx     context.Context
	history *store.History
	dir     string // directory handed to fsnotify
	match   func(name string) bool

	sub     chan []scan.Record
	errc    chan error
	done    chan struct{}
	signals chan struct{} // debounced reload trigger; capacity 1

	// Guards the debounce timer so stop() can cancel it safely.
	mu       sync.Mutex
	debounce *time.Timer
	stopOnce sync.Once
}

// newStoreWatcher resolves what to watch from the backend path. A directory
// (file backend) is watched directly, skipping dot-prefixed temp files. A
// file (SQLite) is watched through its parent, matching the database and
// its -wal/-shm siblings.
func newStoreWatcher(ctx context.Context, h *store.History) (*storeWatcher, error) {
	path := h.Path()
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	w := &storeWatcher{
		ctx:     ctx,
		history: h,
		sub:     make(chan []scan.Record, 1),
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
		signals: make(chan struct{}, 1),
	}
	if info.IsDir() {
		w.dir = path
		w.match = func(name string) bool {
			return !strings.HasPrefix(filepath.Base(name), ".")
		}
	} else {
		w.dir = filepath.Dir(path)
		base := filepath.Base(path)
		w.match = func(name string) bool {
			return strings.HasPrefix(filepath.Base(name), base)
		}
	}
	return w, nil
}

// stop signals the watcher goroutine to exit and cancels any pending debounce.
// Safe to call more than once.
func (w *storeWatcher) stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	})
}

// sendSignal does a non-blocking send on the signals channel.
// A pending signal already covers this write.
func (w *storeWatcher) sendSignal() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// run starts the fsnotify loop. Intended to be called as a goroutine.
//
// Closes sub and errc on exit so blocked waitForStoreUpdate/waitForWatcherErr
// Cmds unblock and return nil instead of leaking goroutines.
func (w *storeWatcher) run() {
	defer close(w.sub)
	defer close(w.errc)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.errc <- err
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		w.errc <- err
		return
	}

	for {
		select {
		case <-w.done:
			return

		case <-w.ctx.Done():
			return

		case <-w.signals:
			w.reload()

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.match(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.mu.Lock()
				if w.debounce != nil {
					w.debounce.Stop()
				}
				w.debounce = time.AfterFunc(watcherDebounce, w.sendSignal)
				w.mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Forward to the TUI; writing to stderr would leak through the alt screen.
			select {
			case w.errc <- err:
			default:
			}
		}
	}
}

// reload reads the history and publishes it, replacing any update the
// receiver has not consumed yet.
func (w *storeWatcher) reload() {
	records := w.history.Load(w.ctx)

	select {
	case w.sub <- records:
	default:
		select {
		case <-w.sub:
		default:
		}
		w.sub <- records
	}
}

// waitForStoreUpdate blocks on the subscription channel and wraps the result
// in a storeUpdateMsg. Returns nil when the channel is closed.
func waitForStoreUpdate(sub chan []scan.Record) tea.Cmd {
	return func() tea.Msg {
		records, ok := <-sub
		if !ok {
			return nil
		}
		return storeUpdateMsg{records: records}
	}
}

// waitForWatcherErr blocks on the error channel and wraps the result
// in a watcherErrMsg. Returns nil when the channel is closed.
func waitForWatcherErr(errc chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-errc
		if !ok {
			return nil
		}
		return watcherErrMsg{err: err}
	}
}
