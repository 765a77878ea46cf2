package core

import "context"

// Store defines the contract for the snippet store. The default
// implementation lives in pkg/adapters/fs; keeping the contract here
// lets the service be tested against an in-memory double.
//
// All operations are synchronous read-modify-write sequences on a single
// document, except Move which touches two (target written first, source
// second, no rollback in between). The store assumes it is the sole
// writer for the duration of an operation; a concurrent writer from
// another session can make an ordinal stale, which surfaces as
// ErrIndexOutOfRange or, worse, an edit landing on the wrong record.
// That hazard is accepted, not mitigated.
type Store interface {
	// ListAll returns every snippet under the store root, eagerly. The
	// second result distinguishes "root directory absent" (false) from
	// "root exists but holds no snippets" (true). Documents that fail to
	// parse are logged and skipped, never fatal.
	ListAll(ctx context.Context) ([]Snippet, bool, error)

	// ListCollections returns every document under the root, sorted by
	// label, case-insensitively.
	ListCollections(ctx context.Context) ([]Collection, error)

	// Create appends a snippet to the document at path, creating the
	// document and its parent directories as needed. A missing document
	// is the normal case for a brand-new collection, not an error.
	Create(ctx context.Context, path string, d Draft) error

	// Update replaces the snippet addressed by id, carrying forward every
	// field of the original record it does not recognize. Fails with
	// ErrIndexOutOfRange when the ordinal no longer resolves.
	Update(ctx context.Context, id SnippetID, d Draft) error

	// Delete removes the snippet addressed by id. A missing document is a
	// no-op; a stale ordinal fails with ErrIndexOutOfRange so programmatic
	// callers can tell, though the service treats it as already deleted.
	Delete(ctx context.Context, id SnippetID) error

	// Move appends the snippet addressed by id to the document at target
	// and removes it from its source. Moving a snippet into its own
	// document is a no-op, not an error.
	Move(ctx context.Context, id SnippetID, target string) error

	// CopyMany duplicates every resolvable snippet into target, writing
	// the target once. Identities that no longer resolve are skipped.
	// Returns the number of snippets actually copied.
	CopyMany(ctx context.Context, ids []SnippetID, target string) (int, error)

	// Import brings an external document into the store. With mergeInto
	// set, its records are appended to that document; otherwise the file
	// is copied verbatim into the root under a de-duplicated base name.
	// Returns the number of imported records and the final path.
	Import(ctx context.Context, source, mergeInto string) (int, string, error)

	// CreateCollection writes a new empty document for name, normalized
	// to a filesystem-safe file under the root. Fails with
	// ErrAlreadyExists on collision. Returns the created path.
	CreateCollection(ctx context.Context, name string) (string, error)

	// Root returns the store root directory.
	Root() string
}

// Watchable is implemented by stores that can observe external changes
// to their documents.
type Watchable interface {
	// Watch emits an event for every observed document change until ctx
	// is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
