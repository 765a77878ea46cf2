// Package core holds the domain model of the snippet store: snippets,
// their identities, collections, and the service that orchestrates
// mutations on top of a Store.
package core

// Format selects which of the two body keys a snippet serializes under.
type Format int

const (
	// FormatPlain stores the body under the plain replacement key.
	FormatPlain Format = iota
	// FormatRich stores the body under the markdown key.
	FormatRich
)

func (f Format) String() string {
	if f == FormatRich {
		return "rich"
	}
	return "plain"
}

// Snippet is the canonical in-memory shape of one trigger→replacement
// record, normalized by the store reader. Unrecognized fields stay in the
// backing document and never surface here; the store carries them forward
// on update by itself.
type Snippet struct {
	ID            SnippetID
	File          string
	Label         string
	Trigger       string
	Body          string
	Format        Format
	WholeWord     bool
	PropagateCase bool
}

// Draft carries the writable fields for Create and Update.
type Draft struct {
	Trigger       string
	Body          string
	Format        Format
	WholeWord     bool
	PropagateCase bool
}

// EventType classifies a change observed in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a document under the store root.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}
