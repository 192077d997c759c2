// Package docstore persists roadmap documents in a local SQLite database
// and provides debounced background autosaving.
//
// Documents are stored whole, as JSON blobs. A roadmap is a small object
// (streams, items, dependencies, milestones) that is always edited as a
// unit, so per-entity tables would add joins without buying anything.
package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/roadline-app/roadline/internal/roadmap"
)

// ErrNotFound is returned when a document id does not exist in the store.
var ErrNotFound = errors.New("document not found")

// Meta describes a stored document without its content.
type Meta struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}

// Store is the persistence boundary for roadmap documents.
type Store interface {
	// List returns metadata for every stored document, most recently
	// updated first.
	List(ctx context.Context) ([]Meta, error)

	// Load returns the document content and display name for id.
	// Returns ErrNotFound if no such document exists.
	Load(ctx context.Context, id string) (*roadmap.Data, string, error)

	// Create stores a new empty document with the given display name and
	// returns its id.
	Create(ctx context.Context, name string) (string, error)

	// Save replaces the content and display name of an existing document.
	// Returns ErrNotFound if no such document exists.
	Save(ctx context.Context, id string, data *roadmap.Data, name string) error

	// Delete removes a document. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error

	Close() error
}
