package docstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.roadline.db")
	if err := os.WriteFile(dbPath, []byte("seed"), 0o644); err != nil {
		t.Fatalf("seed db file: %v", err)
	}

	w, err := NewWatcher(dbPath)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(w.Stop)
	return w, dbPath
}

func TestWatcherDetectsExternalWrite(t *testing.T) {
	t.Parallel()
	w, dbPath := testWatcher(t)

	if err := os.WriteFile(dbPath, []byte("external change"), 0o644); err != nil {
		t.Fatalf("write db file: %v", err)
	}

	select {
	case <-w.Changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification after external write")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	t.Parallel()
	w, dbPath := testWatcher(t)

	other := filepath.Join(filepath.Dir(dbPath), "notes.txt")
	if err := os.WriteFile(other, []byte("unrelated"), 0o644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}

	select {
	case ts := <-w.Changes:
		t.Errorf("unexpected change notification at %v for unrelated file", ts)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcherPauseSuppressesOwnSaves(t *testing.T) {
	t.Parallel()
	w, dbPath := testWatcher(t)

	w.Pause()
	// Give the loop a moment to process the pause before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(dbPath, []byte("local save"), 0o644); err != nil {
		t.Fatalf("write db file: %v", err)
	}
	time.Sleep(400 * time.Millisecond)
	w.Resume()

	select {
	case ts := <-w.Changes:
		t.Errorf("unexpected change notification at %v while paused", ts)
	case <-time.After(600 * time.Millisecond):
	}
}
