package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matchvault/matchvault/pkg/core"
)

// debounceWindow coalesces the event bursts editors produce for a single
// save into one emitted change.
const debounceWindow = 50 * time.Millisecond

// Watch streams change events for match files under the root until the
// context is cancelled. Events are debounced per path; the last event
// type within a window wins.
func (s *Store) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addRecursive(watcher, s.root); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan core.Event)
	go s.watchLoop(ctx, watcher, events)
	return events, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- core.Event) {
	defer close(out)
	defer watcher.Close()

	pending := make(map[string]core.EventType)
	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}

	flush := func() {
		for path, eventType := range pending {
			delete(pending, path)
			select {
			case out <- core.Event{Type: eventType, Path: path, Timestamp: time.Now().Unix()}:
			case <-ctx.Done():
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// New directories must be watched before anything is
			// written inside them.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if filepath.Base(event.Name) != systemDir {
						_ = addRecursive(watcher, event.Name)
					}
					continue
				}
			}
			eventType, ok := mapEvent(event)
			if !ok {
				continue
			}
			pending[event.Name] = eventType
			// The timer may have fired without its channel being
			// drained yet; Reset on such a timer fires early.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounceWindow)

		case <-timer.C:
			flush()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watch error", "error", err)
		}
	}
}

// mapEvent translates a filesystem event into a store event, filtering
// out non-match files and the system directory.
func mapEvent(event fsnotify.Event) (core.EventType, bool) {
	if filepath.Ext(event.Name) != extension {
		return "", false
	}
	if filepath.Base(filepath.Dir(event.Name)) == systemDir {
		return "", false
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		return core.EventCreate, true
	case event.Op.Has(fsnotify.Write):
		return core.EventModify, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return core.EventDelete, true
	default:
		return "", false
	}
}

// addRecursive watches dir and every subdirectory except the system
// directory. fsnotify watches are not recursive on their own.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == systemDir {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
