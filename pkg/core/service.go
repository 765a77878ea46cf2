package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Service implements the UI-facing operations on top of a Store. It owns
// the concerns a frontend must never get wrong on its own: decoding
// identity transport strings, treating stale deletes as successes, and
// ordering batch moves so ordinal shifting cannot corrupt a document.
type Service struct {
	store Store
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying store for callers that need direct access.
func (s *Service) Store() Store { return s.store }

// ListAll returns every snippet in the store together with a flag
// reporting whether the store root exists at all.
func (s *Service) ListAll(ctx context.Context) ([]Snippet, bool, error) {
	return s.store.ListAll(ctx)
}

// ListCollections returns all documents sorted by display label.
func (s *Service) ListCollections(ctx context.Context) ([]Collection, error) {
	return s.store.ListCollections(ctx)
}

// Create appends a new snippet to the document at path. An empty path
// falls back to the default collection under the store root.
func (s *Service) Create(ctx context.Context, path string, d Draft) error {
	if d.Trigger == "" {
		return errors.New("trigger cannot be empty")
	}
	if path == "" {
		path = filepath.Join(s.store.Root(), DefaultCollection)
	}
	return s.store.Create(ctx, path, d)
}

// Update replaces the snippet addressed by the raw identity string.
func (s *Service) Update(ctx context.Context, rawID string, d Draft) error {
	id, err := DecodeID(rawID)
	if err != nil {
		return err
	}
	if d.Trigger == "" {
		return errors.New("trigger cannot be empty")
	}
	return s.store.Update(ctx, id, d)
}

// Delete removes the snippet addressed by the raw identity string. A
// snippet that is already gone counts as deleted: the UI reissues
// deletes without reconfirming existence, so a stale ordinal is success
// here even though the store reports it as ErrIndexOutOfRange.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := DecodeID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrIndexOutOfRange) {
			return nil
		}
		return err
	}
	return nil
}

// DeleteMany removes the snippets addressed by rawIDs and returns how
// many were actually deleted. Like MoveMany, identities are grouped by
// document and processed in descending ordinal order within each, so
// earlier removals never shift later targets. Stale identities count as
// already deleted and are skipped.
func (s *Service) DeleteMany(ctx context.Context, rawIDs []string) (int, error) {
	ids, err := decodeIDs(rawIDs)
	if err != nil {
		return 0, err
	}

	byFile := make(map[string][]int)
	for _, id := range ids {
		byFile[id.File] = append(byFile[id.File], id.Index)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	deleted := 0
	for _, file := range files {
		indices := byFile[file]
		sort.Sort(sort.Reverse(sort.IntSlice(indices)))
		for _, index := range indices {
			if err := s.store.Delete(ctx, SnippetID{File: file, Index: index}); err != nil {
				if errors.Is(err, ErrIndexOutOfRange) {
					continue
				}
				return deleted, fmt.Errorf("delete %s::%d: %w", file, index, err)
			}
			deleted++
		}
	}
	return deleted, nil
}

// MoveMany moves the snippets addressed by rawIDs into the document at
// target and returns how many were moved.
//
// Identities are grouped by source document and processed in DESCENDING
// ordinal order within each document. Every removal shifts the ordinals
// of later records in the same document down by one, so ascending order
// would silently move the wrong records. Identities already living in
// the target document are skipped.
func (s *Service) MoveMany(ctx context.Context, rawIDs []string, target string) (int, error) {
	ids, err := decodeIDs(rawIDs)
	if err != nil {
		return 0, err
	}

	byFile := make(map[string][]int)
	for _, id := range ids {
		byFile[id.File] = append(byFile[id.File], id.Index)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	moved := 0
	for _, file := range files {
		if sameDocument(file, target) {
			continue
		}
		indices := byFile[file]
		sort.Sort(sort.Reverse(sort.IntSlice(indices)))
		for _, index := range indices {
			if err := s.store.Move(ctx, SnippetID{File: file, Index: index}, target); err != nil {
				return moved, fmt.Errorf("move %s::%d: %w", file, index, err)
			}
			moved++
		}
	}
	return moved, nil
}

// CopyMany duplicates the snippets addressed by rawIDs into the document
// at target. Identities that no longer resolve are skipped.
func (s *Service) CopyMany(ctx context.Context, rawIDs []string, target string) (int, error) {
	ids, err := decodeIDs(rawIDs)
	if err != nil {
		return 0, err
	}
	return s.store.CopyMany(ctx, ids, target)
}

// ExportMany stages a shareable document containing the addressed
// snippets in the system temp directory and returns its path. The staged
// file name carries a random suffix so parallel exports cannot collide;
// on failure the staging file is removed. The caller owns the file on
// success and is responsible for moving or deleting it.
func (s *Service) ExportMany(ctx context.Context, rawIDs []string, filename string) (string, int, error) {
	ids, err := decodeIDs(rawIDs)
	if err != nil {
		return "", 0, err
	}

	name := SafeFileName(filename)
	if name == "" {
		name = "export"
	}
	name = strings.TrimSuffix(name, ".yml")

	staged := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.yml", name, uuid.NewString()))
	count, err := s.store.CopyMany(ctx, ids, staged)
	if err != nil {
		os.Remove(staged)
		return "", 0, err
	}
	return staged, count, nil
}

// Import brings an external document into the store. See Store.Import.
func (s *Service) Import(ctx context.Context, source, mergeInto string) (int, string, error) {
	return s.store.Import(ctx, source, mergeInto)
}

// CreateCollection writes a new empty document named after name.
func (s *Service) CreateCollection(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("collection name cannot be empty")
	}
	return s.store.CreateCollection(ctx, name)
}

// Watch observes document changes if the store supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx)
}

// DefaultCollection is the document new snippets land in when no target
// is chosen.
const DefaultCollection = "base.yml"

func decodeIDs(rawIDs []string) ([]SnippetID, error) {
	ids := make([]SnippetID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := DecodeID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func sameDocument(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
