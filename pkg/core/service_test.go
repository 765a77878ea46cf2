package core_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchvault/matchvault/pkg/core"
)

// fakeStore records mutations so service-level ordering rules can be
// asserted without touching the filesystem.
type fakeStore struct {
	root    string
	moves   []core.SnippetID
	deletes []core.SnippetID
	creates []string

	failMoveAt int // 1-based call number that fails; 0 disables
	deleteErr  error
	staleIDs   map[core.SnippetID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{root: "/vault"}
}

func (f *fakeStore) ListAll(ctx context.Context) ([]core.Snippet, bool, error) {
	return nil, true, nil
}

func (f *fakeStore) ListCollections(ctx context.Context) ([]core.Collection, error) {
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, path string, d core.Draft) error {
	f.creates = append(f.creates, path)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, id core.SnippetID, d core.Draft) error {
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id core.SnippetID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.staleIDs[id] {
		return fmt.Errorf("%w: %s", core.ErrIndexOutOfRange, id)
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeStore) Move(ctx context.Context, id core.SnippetID, target string) error {
	if f.failMoveAt > 0 && len(f.moves)+1 == f.failMoveAt {
		return fmt.Errorf("disk full")
	}
	f.moves = append(f.moves, id)
	return nil
}

func (f *fakeStore) CopyMany(ctx context.Context, ids []core.SnippetID, target string) (int, error) {
	return len(ids), nil
}

func (f *fakeStore) Import(ctx context.Context, source, mergeInto string) (int, string, error) {
	return 0, "", nil
}

func (f *fakeStore) CreateCollection(ctx context.Context, name string) (string, error) {
	return filepath.Join(f.root, name), nil
}

func (f *fakeStore) Root() string { return f.root }

func TestServiceCreate(t *testing.T) {
	t.Run("Defaults To Base Collection", func(t *testing.T) {
		store := newFakeStore()
		svc := core.NewService(store)

		err := svc.Create(context.Background(), "", core.Draft{Trigger: ":hi", Body: "hello"})
		require.NoError(t, err)
		require.Len(t, store.creates, 1)
		assert.Equal(t, filepath.Join("/vault", core.DefaultCollection), store.creates[0])
	})

	t.Run("Rejects Empty Trigger", func(t *testing.T) {
		svc := core.NewService(newFakeStore())

		err := svc.Create(context.Background(), "", core.Draft{Body: "hello"})
		assert.Error(t, err)
	})
}

func TestServiceDelete(t *testing.T) {
	t.Run("Stale Ordinal Is Success", func(t *testing.T) {
		store := newFakeStore()
		store.deleteErr = fmt.Errorf("%w: gone", core.ErrIndexOutOfRange)
		svc := core.NewService(store)

		err := svc.Delete(context.Background(), "/vault/base.yml::9")
		assert.NoError(t, err)
	})

	t.Run("Other Errors Surface", func(t *testing.T) {
		store := newFakeStore()
		store.deleteErr = fmt.Errorf("permission denied")
		svc := core.NewService(store)

		err := svc.Delete(context.Background(), "/vault/base.yml::0")
		assert.Error(t, err)
	})

	t.Run("Rejects Malformed ID", func(t *testing.T) {
		svc := core.NewService(newFakeStore())

		err := svc.Delete(context.Background(), "not-an-id")
		assert.ErrorIs(t, err, core.ErrMalformedID)
	})
}

func TestServiceDeleteMany(t *testing.T) {
	t.Run("Descending Within Each File", func(t *testing.T) {
		store := newFakeStore()
		svc := core.NewService(store)

		deleted, err := svc.DeleteMany(context.Background(), []string{
			"/vault/a.yml::0",
			"/vault/a.yml::2",
			"/vault/b.yml::1",
			"/vault/a.yml::1",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, deleted)

		want := []core.SnippetID{
			{File: "/vault/a.yml", Index: 2},
			{File: "/vault/a.yml", Index: 1},
			{File: "/vault/a.yml", Index: 0},
			{File: "/vault/b.yml", Index: 1},
		}
		assert.Equal(t, want, store.deletes)
	})

	t.Run("Stale Identities Skipped With Honest Count", func(t *testing.T) {
		store := newFakeStore()
		store.staleIDs = map[core.SnippetID]bool{
			{File: "/vault/a.yml", Index: 9}: true,
		}
		svc := core.NewService(store)

		deleted, err := svc.DeleteMany(context.Background(), []string{
			"/vault/a.yml::9",
			"/vault/a.yml::0",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
		require.Len(t, store.deletes, 1)
		assert.Equal(t, 0, store.deletes[0].Index)
	})

	t.Run("Rejects Malformed ID", func(t *testing.T) {
		svc := core.NewService(newFakeStore())

		_, err := svc.DeleteMany(context.Background(), []string{"bogus"})
		assert.ErrorIs(t, err, core.ErrMalformedID)
	})
}

func TestServiceMoveMany(t *testing.T) {
	t.Run("Descending Within Each File", func(t *testing.T) {
		store := newFakeStore()
		svc := core.NewService(store)

		moved, err := svc.MoveMany(context.Background(), []string{
			"/vault/a.yml::0",
			"/vault/a.yml::2",
			"/vault/a.yml::1",
			"/vault/b.yml::3",
		}, "/vault/target.yml")
		require.NoError(t, err)
		assert.Equal(t, 4, moved)

		want := []core.SnippetID{
			{File: "/vault/a.yml", Index: 2},
			{File: "/vault/a.yml", Index: 1},
			{File: "/vault/a.yml", Index: 0},
			{File: "/vault/b.yml", Index: 3},
		}
		assert.Equal(t, want, store.moves)
	})

	t.Run("Skips IDs Already In Target", func(t *testing.T) {
		store := newFakeStore()
		svc := core.NewService(store)

		moved, err := svc.MoveMany(context.Background(), []string{
			"/vault/target.yml::0",
			"/vault/a.yml::0",
		}, "/vault/target.yml")
		require.NoError(t, err)
		assert.Equal(t, 1, moved)
		require.Len(t, store.moves, 1)
		assert.Equal(t, "/vault/a.yml", store.moves[0].File)
	})

	t.Run("Reports Partial Progress On Failure", func(t *testing.T) {
		store := newFakeStore()
		store.failMoveAt = 2
		svc := core.NewService(store)

		moved, err := svc.MoveMany(context.Background(), []string{
			"/vault/a.yml::1",
			"/vault/a.yml::0",
		}, "/vault/target.yml")
		assert.Error(t, err)
		assert.Equal(t, 1, moved)
	})
}

func TestServiceExportMany(t *testing.T) {
	t.Run("Stages Under Temp With Safe Name", func(t *testing.T) {
		svc := core.NewService(newFakeStore())

		staged, count, err := svc.ExportMany(context.Background(),
			[]string{"/vault/a.yml::0"}, "my export!.yml")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		base := filepath.Base(staged)
		assert.True(t, strings.HasPrefix(base, "my_export"), "staged name %q", base)
		assert.True(t, strings.HasSuffix(base, ".yml"))
	})

	t.Run("Falls Back To Generic Name", func(t *testing.T) {
		svc := core.NewService(newFakeStore())

		staged, _, err := svc.ExportMany(context.Background(),
			[]string{"/vault/a.yml::0"}, "///")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(filepath.Base(staged), "export-"))
	})
}

func TestServiceCreateCollection(t *testing.T) {
	svc := core.NewService(newFakeStore())

	_, err := svc.CreateCollection(context.Background(), "   ")
	assert.Error(t, err)
}
