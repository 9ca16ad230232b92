package timeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DeleteEntry removes an entry and everything it owns. Metadata goes first,
// media rows and the entry row in one transaction, so the logical record is
// gone even if blob cleanup fails. Blob deletes then fan out concurrently;
// individual failures are logged and swallowed, trading leaked blobs for
// availability.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	owned, err := s.media.ListByEntryIDs(ctx, []int64{id})
	if err != nil {
		return err
	}

	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.media.DeleteByEntryID(ctx, id); err != nil {
			return err
		}
		return s.entries.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if len(owned) == 0 {
		return nil
	}

	g := new(errgroup.Group)
	for _, m := range owned {
		key := m.StorageKey
		g.Go(func() error {
			if err := s.blobs.Delete(ctx, key); err != nil {
				s.log.WarnContext(ctx, "blob cleanup failed, object leaked",
					slog.String("storage_key", key),
					slog.Int64("entry_id", id),
					slog.String("error", err.Error()),
				)
			}
			// Never propagate: one stuck blob must not fail the others
			// or the request.
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines always return nil

	return nil
}

// DeleteMedia removes a single photo: 404s when the row is absent, deletes
// the metadata row first, then best-effort deletes the blob (same order as
// entry deletion).
func (s *Service) DeleteMedia(ctx context.Context, id int64) error {
	m, err := s.media.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.media.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, m.StorageKey); err != nil {
		s.log.WarnContext(ctx, "blob cleanup failed, object leaked",
			slog.String("storage_key", m.StorageKey),
			slog.Int64("media_id", id),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
