package matchvault

import (
	"log/slog"

	"github.com/matchvault/matchvault/internal/platform"
	"github.com/matchvault/matchvault/pkg/core"
)

// --- Types ---

// Snippet is a public alias for the core snippet record.
type Snippet = core.Snippet

// Draft is a public alias for the core draft.
type Draft = core.Draft

// SnippetID is a public alias for the core snippet identity.
type SnippetID = core.SnippetID

// Collection is a public alias for the core collection descriptor.
type Collection = core.Collection

// --- Configuration ---

// Option defines a functional option for configuring matchvault.
type Option = platform.Option

// WithAutoInit enables automatic creation of the store root.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithMustExist ensures the store root must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithListCache enables or disables the mtime-keyed list index.
func WithListCache(enabled bool) Option {
	return platform.WithListCache(enabled)
}

// --- Factory ---

// Open creates a matchvault service over the store at root. An empty
// root selects the platform default espanso match directory.
func Open(root string, opts ...Option) (*core.Service, error) {
	return platform.Open(root, opts...)
}

// DefaultRoot returns the conventional espanso match directory for the
// current platform.
func DefaultRoot() string {
	return platform.DefaultRoot()
}

// ParseID decodes a snippet identity from its string form, accepting
// percent-encoded input as produced by URL-carrying frontends.
func ParseID(raw string) (SnippetID, error) {
	return core.DecodeID(raw)
}
