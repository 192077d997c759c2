package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roadline-app/roadline/internal/roadmap"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    content    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements Store using a local SQLite database in WAL mode.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode and
// busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("docstore: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled connections
	// that each need their own PRAGMA setup. WAL mode still benefits external
	// readers and provides crash-safe writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: set busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: create schema: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Path returns the filesystem path of the underlying database file.
func (s *SQLiteStore) Path() string { return s.path }

// List returns metadata for every stored document, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context) ([]Meta, error) {
	const q = `SELECT id, name, updated_at FROM documents ORDER BY updated_at DESC, id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("docstore: list documents: %w", err)
	}
	defer rows.Close()

	var result []Meta
	for rows.Next() {
		var m Meta
		var ts string
		if err := rows.Scan(&m.ID, &m.Name, &ts); err != nil {
			return nil, fmt.Errorf("docstore: scan document row: %w", err)
		}
		updatedAt, parseErr := parseTimestamp(ts)
		if parseErr != nil {
			return nil, fmt.Errorf("docstore: parse document timestamp: %w", parseErr)
		}
		m.UpdatedAt = updatedAt
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("docstore: iterate documents: %w", err)
	}
	return result, nil
}

// Load returns the document content and display name for id.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*roadmap.Data, string, error) {
	var name, content string
	err := s.db.QueryRowContext(ctx, "SELECT name, content FROM documents WHERE id = ?", id).Scan(&name, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, "", fmt.Errorf("docstore: load document %q: %w", id, err)
	}

	data, err := roadmap.DecodeJSON([]byte(content))
	if err != nil {
		return nil, "", fmt.Errorf("docstore: decode document %q: %w", id, err)
	}
	return data, name, nil
}

// Create stores a new empty document and returns its id.
func (s *SQLiteStore) Create(ctx context.Context, name string) (string, error) {
	id := uuid.NewString()
	content, err := roadmap.EncodeJSON(roadmap.NewData())
	if err != nil {
		return "", fmt.Errorf("docstore: encode new document: %w", err)
	}

	const q = `INSERT INTO documents (id, name, content) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, id, name, string(content)); err != nil {
		return "", fmt.Errorf("docstore: create document %q: %w", name, err)
	}
	return id, nil
}

// Save replaces the content and display name of an existing document.
func (s *SQLiteStore) Save(ctx context.Context, id string, data *roadmap.Data, name string) error {
	content, err := roadmap.EncodeJSON(data)
	if err != nil {
		return fmt.Errorf("docstore: encode document %q: %w", id, err)
	}

	const q = `UPDATE documents SET name = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, name, string(content), id)
	if err != nil {
		return fmt.Errorf("docstore: save document %q: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("docstore: save rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// Delete removes a document. Deleting a missing id is a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("docstore: delete document %q: %w", id, err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timestampFormats lists the formats SQLite drivers may produce for
// CURRENT_TIMESTAMP. modernc.org/sqlite typically returns RFC 3339
// (with "T" separator and "Z" suffix), while canonical SQLite returns
// the space-separated DateTime format.
var timestampFormats = []string{
	time.RFC3339,
	time.DateTime,
}

// parseTimestamp attempts to parse a SQLite timestamp string using known formats.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}
