package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roadline-app/roadline/internal/roadmap"
)

// failingStore wraps a Store and fails a configurable number of saves.
type failingStore struct {
	Store
	failures int
}

func (f *failingStore) Save(ctx context.Context, id string, data *roadmap.Data, name string) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("disk on fire")
	}
	return f.Store.Save(ctx, id, data, name)
}

func waitForState(t *testing.T, a *Autosaver, want SaveState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got, _ := a.State(); got == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	got, err := a.State()
	t.Fatalf("autosaver state = %v (err %v), want %v", got, err, want)
}

func TestAutosaverSavesAfterQuietPeriod(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Doc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doc := roadmap.NewStore(nil)
	doc.AddStream("Platform", "#162e51")
	if !doc.Dirty() {
		t.Fatal("store not dirty after mutation")
	}

	a := NewAutosaver(s, doc, id, "Doc", 20*time.Millisecond)
	a.Touch()
	if got, _ := a.State(); got != SaveStatePending {
		t.Errorf("state after Touch = %v, want pending", got)
	}

	waitForState(t, a, SaveStateClean)

	data, _, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Streams) != 1 {
		t.Errorf("persisted %d streams, want 1", len(data.Streams))
	}
	if err := a.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestAutosaverSnapshotsAtTouch(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Doc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doc := roadmap.NewStore(nil)
	doc.AddStream("One", "#162e51")

	a := NewAutosaver(s, doc, id, "Doc", time.Hour)
	a.Touch()

	// A mutation after Touch stays out of the pending write until the
	// next Touch.
	doc.AddStream("Two", "#e52207")
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	data, _, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Streams) != 1 {
		t.Fatalf("persisted %d streams, want the 1 captured at Touch", len(data.Streams))
	}

	a.Touch()
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	data, _, err = s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Streams) != 2 {
		t.Errorf("persisted %d streams after second Touch, want 2", len(data.Streams))
	}
	if err := a.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}

// The background write must never read the live document: with a short
// debounce, saves overlap the mutation loop, and the race detector flags any
// shared access between the encoder and the mutating goroutine.
func TestAutosaverSaveDoesNotReadLiveDocument(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Doc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doc := roadmap.NewStore(nil)

	a := NewAutosaver(s, doc, id, "Doc", time.Millisecond)
	for i := 0; i < 200; i++ {
		streamID := doc.AddStream("Stream", "#162e51")
		doc.AddItem(streamID)
		a.Touch()
		if i%20 == 0 {
			time.Sleep(2 * time.Millisecond)
		}
	}

	waitForState(t, a, SaveStateClean)
	data, _, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Streams) != 200 {
		t.Errorf("persisted %d streams, want 200", len(data.Streams))
	}
	if err := a.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestAutosaverTouchResetsTimer(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Doc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doc := roadmap.NewStore(nil)
	doc.AddStream("One", "#162e51")

	a := NewAutosaver(s, doc, id, "Doc", 80*time.Millisecond)
	a.Touch()
	time.Sleep(40 * time.Millisecond)

	// A second mutation inside the quiet period restarts the clock.
	doc.AddStream("Two", "#e52207")
	a.Touch()
	time.Sleep(40 * time.Millisecond)
	if got, _ := a.State(); got != SaveStatePending {
		t.Errorf("state inside reset window = %v, want pending", got)
	}

	waitForState(t, a, SaveStateClean)
	data, _, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Streams) != 2 {
		t.Errorf("persisted %d streams, want 2 (both mutations in one save)", len(data.Streams))
	}
	if err := a.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestAutosaverFailureKeepsDirty(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Doc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doc := roadmap.NewStore(nil)
	doc.AddStream("Platform", "#162e51")

	fs := &failingStore{Store: s, failures: 1}
	a := NewAutosaver(fs, doc, id, "Doc", 20*time.Millisecond)
	a.Touch()

	waitForState(t, a, SaveStateError)
	if _, saveErr := a.State(); saveErr == nil {
		t.Error("State returned nil error after failed save")
	}

	// Next mutation retries and succeeds.
	a.Touch()
	waitForState(t, a, SaveStateClean)
	data, _, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Streams) != 1 {
		t.Errorf("persisted %d streams after retry, want 1", len(data.Streams))
	}
	if err := a.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestAutosaverFlush(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Doc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doc := roadmap.NewStore(nil)
	doc.AddStream("Platform", "#162e51")

	// Long debounce: Flush must not wait for it.
	a := NewAutosaver(s, doc, id, "Doc", time.Hour)
	a.Touch()
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, _ := a.State(); got != SaveStateClean {
		t.Errorf("state after Flush = %v, want clean", got)
	}

	data, _, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Streams) != 1 {
		t.Errorf("persisted %d streams, want 1", len(data.Streams))
	}
	if err := a.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}
