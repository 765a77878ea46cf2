package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matchvault/matchvault/pkg/core"
)

// waitFor drains the event channel until an event for path with one of
// the wanted types arrives or the timeout elapses. Writing a new file
// produces a create immediately followed by a write, and the debounce
// window keeps only the last one, so callers accept either.
func waitFor(t *testing.T, events <-chan core.Event, path string, want ...core.EventType) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				t.Fatal("event channel closed")
			}
			if event.Path != path {
				continue
			}
			for _, w := range want {
				if event.Type == w {
					return
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v on %s", want, path)
		}
	}
}

func TestWatch(t *testing.T) {
	store, root := setupStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	path := filepath.Join(root, "watched.yml")
	seedFile(t, path, "matches: []\n")
	waitFor(t, events, path, core.EventCreate, core.EventModify)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	waitFor(t, events, path, core.EventDelete)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	store, root := setupStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	seedFile(t, filepath.Join(root, "notes.txt"), "not a match file")

	select {
	case event := <-events:
		t.Fatalf("unexpected event: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}
