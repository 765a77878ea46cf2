package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matchvault/matchvault/internal/platform"
	"github.com/matchvault/matchvault/pkg/core"
)

func TestOpen(t *testing.T) {
	t.Run("AutoInit Creates Root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "match")

		svc, err := platform.Open(root, platform.WithAutoInit(true))
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			t.Errorf("expected root to be created at %s", root)
		}
		if svc.Store().Root() != root {
			t.Errorf("unexpected root %s", svc.Store().Root())
		}
	})

	t.Run("MustExist Fails On Missing Root", func(t *testing.T) {
		_, err := platform.Open(filepath.Join(t.TempDir(), "absent"), platform.WithMustExist(true))
		if err == nil {
			t.Error("expected Open to fail")
		}
	})

	t.Run("Service Is Usable End To End", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "match")
		svc, err := platform.Open(root, platform.WithAutoInit(true))
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}

		ctx := context.Background()
		if err := svc.Create(ctx, "", core.Draft{Trigger: ":hi", Body: "hello"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		snippets, exists, err := svc.ListAll(ctx)
		if err != nil || !exists {
			t.Fatalf("ListAll failed: exists=%v err=%v", exists, err)
		}
		if len(snippets) != 1 || snippets[0].Label != "base" {
			t.Errorf("unexpected snippets: %v", snippets)
		}
	})
}

func TestDefaultRoot(t *testing.T) {
	if platform.DefaultRoot() == "" {
		t.Error("expected a non-empty default root")
	}
}
