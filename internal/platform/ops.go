package platform

import (
	"context"

	"github.com/matchvault/matchvault/pkg/adapters/fs"
	"github.com/matchvault/matchvault/pkg/core"
)

// Open configures a filesystem-backed store at root and returns the
// service wrapping it. An empty root selects the platform default
// espanso match directory.
func Open(root string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if root == "" {
		root = DefaultRoot()
	}

	store := fs.NewStore(fs.Config{
		Root:         root,
		MustExist:    o.mustExist,
		AutoInit:     o.autoInit,
		DisableCache: o.noCache,
		Logger:       o.logger,
	})
	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return core.NewService(store), nil
}
