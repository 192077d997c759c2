package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/roadline-app/roadline/internal/roadmap"
)

// DefaultAutosaveDebounce is how long the autosaver waits after the last
// mutation before writing the document.
const DefaultAutosaveDebounce = 2 * time.Second

// SaveState reports the autosaver's view of the document.
type SaveState int

const (
	// SaveStateClean means the stored document matches the in-memory one.
	SaveStateClean SaveState = iota
	// SaveStatePending means a save is scheduled but has not run yet.
	SaveStatePending
	// SaveStateSaving means a save is in flight.
	SaveStateSaving
	// SaveStateError means the last save attempt failed; the document
	// stays dirty and the save will be retried on the next mutation.
	SaveStateError
)

// String returns the status-bar label for the state.
func (s SaveState) String() string {
	switch s {
	case SaveStateClean:
		return "saved"
	case SaveStatePending:
		return "pending"
	case SaveStateSaving:
		return "saving"
	case SaveStateError:
		return "save failed"
	default:
		return "unknown"
	}
}

// Autosaver persists a roadmap.Store's document after a quiet period.
// Each call to Touch resets the debounce timer; the write happens once no
// mutation has arrived for the debounce interval.
//
// Touch must run on the goroutine that mutates the document: it takes a deep
// snapshot there, and the background write only ever sees snapshots. The live
// tree is never read off the mutating goroutine.
type Autosaver struct {
	store    Store
	doc      *roadmap.Store
	docID    string
	name     string
	debounce time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	state    SaveState
	lastErr  error
	snapshot *roadmap.Data
	gen      uint64
	savedGen uint64

	done chan struct{}
	wg   sync.WaitGroup
}

// NewAutosaver creates an autosaver for the document docID backed by store.
// A non-positive debounce falls back to DefaultAutosaveDebounce.
func NewAutosaver(store Store, doc *roadmap.Store, docID, name string, debounce time.Duration) *Autosaver {
	if debounce <= 0 {
		debounce = DefaultAutosaveDebounce
	}
	return &Autosaver{
		store:    store,
		doc:      doc,
		docID:    docID,
		name:     name,
		debounce: debounce,
		done:     make(chan struct{}),
	}
}

// Touch schedules a save after the debounce interval, resetting any
// previously scheduled one. The document is snapshotted here, on the caller's
// goroutine, so mutations after Touch cannot tear an in-flight write.
func (a *Autosaver) Touch() {
	snap := a.doc.Data().Clone()

	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-a.done:
		return
	default:
	}

	a.gen++
	a.snapshot = snap
	a.state = SaveStatePending
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.save)
}

// SetName updates the display name written with the next save.
func (a *Autosaver) SetName(name string) {
	a.mu.Lock()
	a.name = name
	a.mu.Unlock()
}

// State returns the current save state and the last save error, if any.
func (a *Autosaver) State() (SaveState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.lastErr
}

// Flush performs any pending save immediately and waits for it to finish.
// It is meant for shutdown paths.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	dirty := a.gen != a.savedGen
	a.mu.Unlock()

	if !dirty {
		return nil
	}
	return a.saveNow(ctx)
}

// Close stops the autosaver. Pending saves are flushed first.
func (a *Autosaver) Close(ctx context.Context) error {
	err := a.Flush(ctx)
	a.mu.Lock()
	select {
	case <-a.done:
	default:
		close(a.done)
	}
	a.mu.Unlock()
	a.wg.Wait()
	return err
}

// save is the timer callback. It runs on the timer goroutine.
func (a *Autosaver) save() {
	a.wg.Add(1)
	defer a.wg.Done()

	select {
	case <-a.done:
		return
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = a.saveNow(ctx)
}

func (a *Autosaver) saveNow(ctx context.Context) error {
	a.mu.Lock()
	snap := a.snapshot
	gen := a.gen
	name := a.name
	a.state = SaveStateSaving
	a.mu.Unlock()

	err := a.store.Save(ctx, a.docID, snap, name)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = SaveStateError
		a.lastErr = err
		return err
	}
	a.lastErr = nil
	a.savedGen = gen
	if a.gen == gen {
		a.state = SaveStateClean
		a.snapshot = nil
	} else {
		// A newer Touch arrived mid-write; its timer persists the
		// fresh snapshot.
		a.state = SaveStatePending
	}
	return nil
}
