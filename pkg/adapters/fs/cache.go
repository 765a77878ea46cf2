package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/matchvault/matchvault/pkg/core"
)

const indexFile = "index.json"

// cachedSnippet is the persisted projection of one record. Identity and
// label are derived from the document path on rehydration, so only the
// decoded fields are stored.
type cachedSnippet struct {
	Trigger       string `json:"trigger"`
	Body          string `json:"body"`
	Rich          bool   `json:"rich,omitempty"`
	WholeWord     bool   `json:"whole_word,omitempty"`
	PropagateCase bool   `json:"propagate_case,omitempty"`
}

// indexEntry caches the snippets of one document keyed by its mtime.
type indexEntry struct {
	Snippets     []cachedSnippet `json:"snippets"`
	LastModified time.Time       `json:"last_modified"`
}

func newIndexEntry(snippets []core.Snippet, modified time.Time) indexEntry {
	cached := make([]cachedSnippet, 0, len(snippets))
	for _, sn := range snippets {
		cached = append(cached, cachedSnippet{
			Trigger:       sn.Trigger,
			Body:          sn.Body,
			Rich:          sn.Format == core.FormatRich,
			WholeWord:     sn.WholeWord,
			PropagateCase: sn.PropagateCase,
		})
	}
	return indexEntry{Snippets: cached, LastModified: modified}
}

// snippets rehydrates the entry into full snippets for the document at
// path, reassigning ordinals positionally.
func (e indexEntry) snippets(path string) []core.Snippet {
	label := core.LabelFor(path)
	out := make([]core.Snippet, 0, len(e.Snippets))
	for i, c := range e.Snippets {
		format := core.FormatPlain
		if c.Rich {
			format = core.FormatRich
		}
		out = append(out, core.Snippet{
			ID:            core.NewID(path, i),
			File:          path,
			Label:         label,
			Trigger:       c.Trigger,
			Body:          c.Body,
			Format:        format,
			WholeWord:     c.WholeWord,
			PropagateCase: c.PropagateCase,
		})
	}
	return out
}

// cache is the mtime-keyed list index, persisted as JSON under the
// store's system directory. It only ever accelerates ListAll; every
// failure path degrades to a re-parse.
type cache struct {
	path string

	mu      sync.Mutex
	entries map[string]indexEntry
	loaded  bool
	dirty   bool
}

func newCache(root string) *cache {
	return &cache{
		path:    filepath.Join(root, systemDir, indexFile),
		entries: make(map[string]indexEntry),
	}
}

// Load reads the persisted index. A missing file is a cold cache; a
// corrupt one is discarded and rebuilt on the next Save.
func (c *cache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}
	c.loaded = true

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read list index: %w", err)
	}

	var entries map[string]indexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.dirty = true
		return fmt.Errorf("corrupt list index, rebuilding: %w", err)
	}
	c.entries = entries
	return nil
}

// Get returns the entry for the document at rel when its recorded mtime
// still matches.
func (c *cache) Get(rel string, modified time.Time) (indexEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[rel]
	if !ok || !entry.LastModified.Equal(modified) {
		return indexEntry{}, false
	}
	return entry, true
}

func (c *cache) Set(rel string, entry indexEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[rel] = entry
	c.dirty = true
}

// Prune drops entries for documents no longer present in the tree.
func (c *cache) Prune(seen map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for rel := range c.entries {
		if !seen[rel] {
			delete(c.entries, rel)
			c.dirty = true
		}
	}
}

// Save persists the index when it changed since Load.
func (c *cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode list index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create system directory: %w", err)
	}
	if err := atomic.WriteFile(c.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write list index: %w", err)
	}
	c.dirty = false
	return nil
}
