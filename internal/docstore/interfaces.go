package docstore

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/docstore_mock.go -package=mock

// ChangeFunc receives the full, ordered snapshot of a collection after
// every change. Snapshots of one subscription are delivered in order and
// never concurrently.
type ChangeFunc func(docs []Document)

// Unsubscribe stops a subscription. It is safe to call more than once.
type Unsubscribe func()

// Store is the remote document store.
type Store interface {
	// Get returns the document at path or [ErrNotFound].
	Get(ctx context.Context, path string) (Document, error)

	// List returns every document of a collection ordered by creation time.
	List(ctx context.Context, collection string) ([]Document, error)

	// Set creates or replaces the document at path. data must encode to a
	// JSON object.
	Set(ctx context.Context, path string, data any) error

	// Update merges top-level fields into an existing document.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, path string) error

	// Add creates a document with a store-assigned ID in collection and
	// returns that ID.
	Add(ctx context.Context, collection string, data any) (string, error)

	// BatchWrite applies all operations atomically.
	BatchWrite(ctx context.Context, ops []WriteOp) error

	// Subscribe delivers the current snapshot of collection and every
	// later one to onChange until the returned function is called or ctx
	// is cancelled.
	Subscribe(ctx context.Context, collection string, onChange ChangeFunc) (Unsubscribe, error)
}
