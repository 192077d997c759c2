package docstore

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the database file for writes made by another process, so
// an open editor can offer to reload. Writes from this process also produce
// events; callers suppress them by pausing around their own saves.
type Watcher struct {
	Path    string
	Changes <-chan time.Time // Read-only external channel

	changes chan time.Time // Internal write channel
	pause   chan bool
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the database file at path.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan time.Time, 4)
	w := &Watcher{
		Path:    path,
		Changes: ch,
		changes: ch,
		pause:   make(chan bool, 4),
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching the database file's directory. SQLite in WAL mode
// writes through the -wal sidecar, so watching the directory and filtering
// by basename catches both the main file and its sidecars.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Pause suppresses change events until Resume is called. Wrap local saves
// in Pause/Resume so they do not surface as external modifications.
func (w *Watcher) Pause() { w.pause <- true }

// Resume re-enables change events after Pause.
func (w *Watcher) Resume() { w.pause <- false }

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: a single save produces several events (main file, -wal,
	// -shm); collapse them into one notification.
	const debounce = 250 * time.Millisecond
	var pendingAt time.Time
	paused := false
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if paused || !w.isDatabaseFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pendingAt = time.Now()
			}

		case p := <-w.pause:
			paused = p
			if paused {
				pendingAt = time.Time{}
			}

		case now, ok := <-ticker.C:
			if !ok {
				return
			}
			if !pendingAt.IsZero() && now.Sub(pendingAt) >= debounce {
				select {
				case w.changes <- pendingAt:
				default: // Listener is behind; one notification is enough.
				}
				pendingAt = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

func (w *Watcher) isDatabaseFile(name string) bool {
	base := filepath.Base(name)
	dbBase := filepath.Base(w.Path)
	return base == dbBase || base == dbBase+"-wal" || base == dbBase+"-shm"
}
