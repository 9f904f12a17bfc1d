package core

import "context"

// Store defines the contract for persisting line-anchored annotations.
//
// Implementations follow a copy-on-write discipline: every mutation is a full
// load-mutate-save cycle and no long-lived in-memory collection is held. The
// (FilePath, Line) pair is unique at all times; a write targeting an existing
// pair replaces it in place.
type Store interface {
	// Load reads the persisted collection. A missing backing file yields an
	// empty collection, not an error. Corrupt state is recovered internally
	// (backup-and-reset) and also yields an empty collection.
	Load(ctx context.Context) (Collection, error)

	// Save persists the full collection atomically.
	Save(ctx context.Context, c Collection) error

	// Upsert creates or replaces the annotation at (filePath, line) with a
	// fresh timestamp. Text is validated and trimmed; the path canonicalized.
	Upsert(ctx context.Context, filePath string, line int, text string) error

	// Delete removes the annotation at (filePath, line).
	// Returns ErrNotFound if no annotation matched; the store is untouched.
	Delete(ctx context.Context, filePath string, line int) error

	// Exists reports whether an annotation is stored at (filePath, line).
	Exists(ctx context.Context, filePath string, line int) (bool, error)

	// Get retrieves the annotation at (filePath, line), if any.
	Get(ctx context.Context, filePath string, line int) (Annotation, bool, error)

	// ByFile returns the annotations for one file, in stored order.
	ByFile(ctx context.Context, filePath string) ([]Annotation, error)

	// AllSorted returns every annotation sorted by (FilePath, Line).
	// The sort is stable: repeated calls on unchanged data return the same order.
	AllSorted(ctx context.Context) ([]Annotation, error)
}

// GlobQuerier is implemented by stores that can filter annotations by a
// path glob pattern (doublestar syntax, matched against the canonical path).
type GlobQuerier interface {
	QueryGlob(ctx context.Context, pattern string) ([]Annotation, error)
}

// Watchable is implemented by stores that can observe external changes to
// their backing state (e.g. another process writing the store file).
type Watchable interface {
	// Watch emits an Event whenever the backing state changes externally.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
