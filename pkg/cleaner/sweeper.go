package cleaner

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/thebartekbanach/picproxy/pkg/errkind"
	"github.com/thebartekbanach/picproxy/pkg/storage"
)

type cacheSweeper struct {
	store storage.BlobStore
}

var _ Sweeper = (*cacheSweeper)(nil)

func NewCacheSweeper(store storage.BlobStore) Sweeper {
	return &cacheSweeper{store}
}

func (s *cacheSweeper) Sweep(ctx context.Context) error {
	entries, err := s.store.ListTopLevel(ctx)
	if err != nil {
		return errkind.Wrap(errkind.Processing, "cache sweep", err)
	}

	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}

		if err := s.store.DeleteSubtree(ctx, entry.Path); err != nil {
			return errkind.Wrap(errkind.Processing, "cache sweep", err)
		}

		log.Info().Str("namespace", entry.Path).Msg("cache namespace removed")
	}

	return nil
}
