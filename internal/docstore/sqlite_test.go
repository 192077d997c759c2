package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/roadline-app/roadline/internal/roadmap"
)

// testStore creates a temporary SQLite document store and registers cleanup.
func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.roadline.db")
	s, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database and table", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)

		var mode string
		if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("query journal_mode: %v", err)
		}
		if mode != "wal" {
			t.Errorf("journal_mode = %q, want %q", mode, "wal")
		}

		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='documents'").Scan(&name)
		if err != nil {
			t.Fatalf("documents table not created: %v", err)
		}
	})

	t.Run("idempotent schema creation", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "idempotent.roadline.db")

		s1, err := Open(context.Background(), dbPath)
		if err != nil {
			t.Fatalf("first open: %v", err)
		}
		s1.Close()

		s2, err := Open(context.Background(), dbPath)
		if err != nil {
			t.Fatalf("second open: %v", err)
		}
		s2.Close()
	})
}

func TestCreateLoadSave(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Q1 Roadmap")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	data, name, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if name != "Q1 Roadmap" {
		t.Errorf("name = %q, want %q", name, "Q1 Roadmap")
	}
	if len(data.Streams) != 0 {
		t.Errorf("new document has %d streams, want 0", len(data.Streams))
	}
	if data.Settings.TimelineStartDate == "" {
		t.Error("new document has empty timeline start date")
	}

	doc := roadmap.NewStore(data)
	doc.AddStream("Platform", "#162e51")
	if err := s.Save(ctx, id, doc.Data(), "Q1 Roadmap v2"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data2, name2, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if name2 != "Q1 Roadmap v2" {
		t.Errorf("reloaded name = %q, want %q", name2, "Q1 Roadmap v2")
	}
	if len(data2.Streams) != 1 || data2.Streams[0].Name != "Platform" {
		t.Errorf("reloaded streams = %+v, want one stream named Platform", data2.Streams)
	}
}

func TestLoadNotFound(t *testing.T) {
	t.Parallel()
	s := testStore(t)

	_, _, err := s.Load(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestSaveNotFound(t *testing.T) {
	t.Parallel()
	s := testStore(t)

	err := s.Save(context.Background(), "ghost", roadmap.NewData(), "x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Save(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	if metas, err := s.List(ctx); err != nil || len(metas) != 0 {
		t.Fatalf("List on empty store = %v, %v; want empty, nil", metas, err)
	}

	idA, err := s.Create(ctx, "Alpha")
	if err != nil {
		t.Fatalf("Create Alpha: %v", err)
	}
	idB, err := s.Create(ctx, "Beta")
	if err != nil {
		t.Fatalf("Create Beta: %v", err)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List returned %d documents, want 2", len(metas))
	}
	found := map[string]string{}
	for _, m := range metas {
		found[m.ID] = m.Name
		if m.UpdatedAt.IsZero() {
			t.Errorf("document %q has zero UpdatedAt", m.ID)
		}
	}
	if found[idA] != "Alpha" || found[idB] != "Beta" {
		t.Errorf("List metas = %v, want Alpha and Beta", found)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "Doomed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := s.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete error = %v, want ErrNotFound", err)
	}

	// Deleting a missing id is a no-op.
	if err := s.Delete(ctx, "ghost"); err != nil {
		t.Errorf("Delete(ghost) = %v, want nil", err)
	}
}

func TestExportImportTOML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "roadmap.toml")

	doc := roadmap.NewStore(nil)
	sid := doc.AddStream("Mobile", "#e52207")
	doc.AddItem(sid)

	if err := ExportTOML(path, doc.Data()); err != nil {
		t.Fatalf("ExportTOML: %v", err)
	}

	got, err := ImportTOML(path)
	if err != nil {
		t.Fatalf("ImportTOML: %v", err)
	}
	if len(got.Streams) != 1 {
		t.Fatalf("imported %d streams, want 1", len(got.Streams))
	}
	if got.Streams[0].Name != "Mobile" {
		t.Errorf("stream name = %q, want %q", got.Streams[0].Name, "Mobile")
	}
	if len(got.Streams[0].Items) != 1 {
		t.Errorf("imported %d items, want 1", len(got.Streams[0].Items))
	}
}

func TestImportTOMLMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := ImportTOML(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("ImportTOML of missing file returned nil error")
	}
}
