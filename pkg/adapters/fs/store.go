// Package fs implements the snippet store on a local directory tree of
// YAML match files.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/natefinch/atomic"

	"github.com/matchvault/matchvault/pkg/core"
)

const (
	extension = ".yml"
	matchGlob = "**/*.yml"

	// systemDir holds store-private state (the list index) and is never
	// scanned for documents.
	systemDir = ".matchvault"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	// Root is the directory tree scanned for match files.
	Root string
	// MustExist makes Initialize fail when Root is absent instead of
	// treating it as an empty store.
	MustExist bool
	// AutoInit makes Initialize create Root. Without it the root is
	// created lazily by the first write.
	AutoInit bool
	// DisableCache turns off the mtime-keyed list index.
	DisableCache bool
	// Logger receives skip-and-continue diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Store implements core.Store against the filesystem. It assumes a
// single-process, single-writer model: no locking, and each mutation is
// a self-contained read-modify-write on one document (two for Move).
type Store struct {
	root   string
	config Config
	cache  *cache
	logger *slog.Logger
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)

// NewStore creates a filesystem-backed snippet store.
func NewStore(config Config) *Store {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	// Identities embed document paths, so the root must be absolute
	// before the first ID is minted. A relative root would otherwise
	// produce identities no mutation can resolve.
	root := config.Root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Store{
		root:   root,
		config: config,
		cache:  newCache(root),
		logger: logger,
	}
}

// Root returns the store root directory.
func (s *Store) Root() string { return s.root }

// Initialize prepares the store root according to the config.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.root)
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: store root %s", core.ErrNotFound, s.root)
		}
		if err != nil {
			return fmt.Errorf("stat store root: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store root is not a directory: %s", s.root)
		}
		return nil
	}
	if s.config.AutoInit {
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			return fmt.Errorf("create store root: %w", err)
		}
	}
	return nil
}

// documents enumerates every match file under the root, sorted for a
// stable iteration order.
func (s *Store) documents() ([]string, error) {
	rels, err := doublestar.Glob(os.DirFS(s.root), matchGlob)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.root, err)
	}
	sort.Strings(rels)

	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		paths = append(paths, filepath.Join(s.root, filepath.FromSlash(rel)))
	}
	return paths, nil
}

// ListAll eagerly extracts every snippet under the root. Enumeration is
// best-effort: a document that fails to parse is logged and skipped so
// one bad file never hides the rest. The bool result is false only when
// the root directory itself is absent.
func (s *Store) ListAll(ctx context.Context) ([]core.Snippet, bool, error) {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return nil, false, nil
	}

	paths, err := s.documents()
	if err != nil {
		return nil, true, err
	}

	useCache := !s.config.DisableCache
	if useCache {
		if err := s.cache.Load(); err != nil {
			s.logger.Warn("failed to load list index", "error", err)
		}
	}
	seen := make(map[string]bool)

	var snippets []core.Snippet
	for _, path := range paths {
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil, true, err
		}
		rel = filepath.ToSlash(rel)
		seen[rel] = true

		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if useCache {
			if entry, hit := s.cache.Get(rel, info.ModTime()); hit {
				snippets = append(snippets, entry.snippets(path)...)
				continue
			}
		}

		fileSnips, ok := s.readDocument(path)
		if !ok {
			continue
		}
		if useCache {
			s.cache.Set(rel, newIndexEntry(fileSnips, info.ModTime()))
		}
		snippets = append(snippets, fileSnips...)
	}

	if useCache {
		s.cache.Prune(seen)
		if err := s.cache.Save(); err != nil {
			s.logger.Warn("failed to save list index", "error", err)
		}
	}
	return snippets, true, nil
}

// readDocument extracts the snippets of one document. The second result
// is false only for unreadable documents, which must not be cached so
// they are retried on the next enumeration.
func (s *Store) readDocument(path string) ([]core.Snippet, bool) {
	f, err := loadMatchFile(path)
	if err != nil {
		s.logger.Warn("skipping unreadable document", "path", path, "error", err)
		return nil, false
	}
	if !f.hasMatches() {
		// Unrelated YAML file in the tree; not an error.
		return nil, true
	}

	label := core.LabelFor(path)
	snippets := make([]core.Snippet, 0, f.len())
	for i := 0; i < f.len(); i++ {
		sn := decodeSnippet(f.recordAt(i))
		sn.ID = core.NewID(path, i)
		sn.File = path
		sn.Label = label
		snippets = append(snippets, sn)
	}
	return snippets, true
}

// ListCollections returns one Collection per document, sorted by label,
// case-insensitively. A missing root yields an empty list.
func (s *Store) ListCollections(ctx context.Context) ([]core.Collection, error) {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return nil, nil
	}

	paths, err := s.documents()
	if err != nil {
		return nil, err
	}

	collections := make([]core.Collection, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil, err
		}
		collections = append(collections, core.Collection{
			Path:     path,
			Relative: filepath.ToSlash(rel),
			Label:    core.LabelFor(path),
		})
	}
	sort.SliceStable(collections, func(i, j int) bool {
		return strings.ToLower(collections[i].Label) < strings.ToLower(collections[j].Label)
	})
	return collections, nil
}

// Create appends a snippet to the document at path, creating it and its
// parent directories as needed.
func (s *Store) Create(ctx context.Context, path string, d core.Draft) error {
	f, err := s.loadOrInit(path)
	if err != nil {
		return err
	}
	f.appendRecord(recordNode(d, nil))
	return f.save()
}

// Update replaces the record at the identity's ordinal with a new record
// built from the draft, carrying forward every field of the original the
// store does not recognize.
func (s *Store) Update(ctx context.Context, id core.SnippetID, d core.Draft) error {
	f, err := s.loadOrInit(id.File)
	if err != nil {
		return err
	}
	if id.Index >= f.len() {
		return fmt.Errorf("%w: %s", core.ErrIndexOutOfRange, id)
	}
	f.replaceAt(id.Index, recordNode(d, f.recordAt(id.Index)))
	return f.save()
}

// Delete removes the record at the identity's ordinal. A missing
// document is a no-op; a stale ordinal fails with ErrIndexOutOfRange. A
// document drained of its last record is written in the zero-byte form.
func (s *Store) Delete(ctx context.Context, id core.SnippetID) error {
	f, err := loadMatchFile(id.File)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !f.hasMatches() || id.Index >= f.len() {
		return fmt.Errorf("%w: %s", core.ErrIndexOutOfRange, id)
	}
	f.removeAt(id.Index)
	return f.saveCollapsingEmpty()
}

// Move appends the addressed record to the target document and removes
// it from its source, writing the target first and the source second.
// There is no rollback between the two writes; a failure after the
// target write leaves the record present in both documents, which the
// single-writer model accepts.
func (s *Store) Move(ctx context.Context, id core.SnippetID, target string) error {
	if sameDocument(id.File, target) {
		return nil
	}

	src, err := loadMatchFile(id.File)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id.File)
	}
	if err != nil {
		return err
	}
	if !src.hasMatches() {
		return fmt.Errorf("%w: %s", core.ErrInvalidFormat, id.File)
	}
	if id.Index >= src.len() {
		return fmt.Errorf("%w: %s", core.ErrIndexOutOfRange, id)
	}

	dst, err := s.loadOrInit(target)
	if err != nil {
		return err
	}

	dst.appendRecord(src.recordAt(id.Index))
	src.removeAt(id.Index)

	if err := dst.save(); err != nil {
		return err
	}
	return src.saveCollapsingEmpty()
}

// CopyMany duplicates every resolvable record into the target document
// and writes the target once. Sources are read-only, so there is no
// ordinal shift hazard and no required processing order; identities that
// no longer resolve are skipped.
func (s *Store) CopyMany(ctx context.Context, ids []core.SnippetID, target string) (int, error) {
	dst, err := s.loadOrInit(target)
	if err != nil {
		return 0, err
	}
	dst.ensureMatches()

	copied := 0
	for _, id := range ids {
		src, err := loadMatchFile(id.File)
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("skipping unreadable source", "path", id.File, "error", err)
			}
			continue
		}
		if !src.hasMatches() || id.Index >= src.len() {
			continue
		}
		dst.appendRecord(cloneNode(src.recordAt(id.Index)))
		copied++
	}

	if err := dst.save(); err != nil {
		return 0, err
	}
	return copied, nil
}

// Import brings an external document into the store. With mergeInto set
// the source records are appended to that document; otherwise the source
// file is copied verbatim into the root under a de-duplicated base name
// so an unrelated collection of the same name is never overwritten.
func (s *Store) Import(ctx context.Context, source, mergeInto string) (int, string, error) {
	src, err := loadMatchFile(source)
	if os.IsNotExist(err) {
		return 0, "", fmt.Errorf("%w: %s", core.ErrNotFound, source)
	}
	if err != nil {
		return 0, "", err
	}
	if !src.hasMatches() {
		return 0, "", fmt.Errorf("%w: %s", core.ErrInvalidFormat, source)
	}
	count := src.len()

	if mergeInto != "" {
		dst, err := s.loadOrInit(mergeInto)
		if err != nil {
			return 0, "", err
		}
		for i := 0; i < count; i++ {
			dst.appendRecord(cloneNode(src.recordAt(i)))
		}
		if err := dst.save(); err != nil {
			return 0, "", err
		}
		return count, mergeInto, nil
	}

	target, err := s.dedupedPath(source)
	if err != nil {
		return 0, "", err
	}
	if err := copyFile(source, target); err != nil {
		return 0, "", err
	}
	return count, target, nil
}

// dedupedPath picks a destination under the root for the base name of
// source, appending _1, _2, … until no collision remains.
func (s *Store) dedupedPath(source string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	candidate := filepath.Join(s.root, stem+extension)
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		candidate = filepath.Join(s.root, fmt.Sprintf("%s_%d%s", stem, n, extension))
	}
}

// CreateCollection writes a new document for name under the root. Unlike
// a document drained by deletion, an explicitly created collection holds
// an intentional empty record list, so it is written as `matches: []`
// rather than the zero-byte form. The reader tolerates both.
func (s *Store) CreateCollection(ctx context.Context, name string) (string, error) {
	if !strings.HasSuffix(name, extension) {
		name += extension
	}
	filename := core.SafeFileName(name)
	if filename == "" || filename == strings.TrimLeft(extension, ".") {
		return "", fmt.Errorf("invalid collection name %q", name)
	}

	path := filepath.Join(s.root, filename)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", core.ErrAlreadyExists, filename)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	f := newMatchFile(path)
	f.ensureMatches()
	if err := f.save(); err != nil {
		return "", err
	}
	return path, nil
}

// loadOrInit loads the document at path, or starts an empty one when the
// file does not exist yet. That is the normal case for a brand-new
// collection, never an error.
func (s *Store) loadOrInit(path string) (*matchFile, error) {
	f, err := loadMatchFile(path)
	if os.IsNotExist(err) {
		return newMatchFile(path), nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func copyFile(source, target string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

func sameDocument(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
