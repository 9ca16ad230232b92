// Package timeline orchestrates the photo/journal timeline: listing entries
// with their media, entry CRUD, uploads, and the cascade between metadata
// rows and blobs.
package timeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

type entryRepo interface {
	List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error)
	ListMilestones(ctx context.Context) ([]domain.Entry, error)
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
	Insert(ctx context.Context, e domain.Entry) (*domain.Entry, error)
	Update(ctx context.Context, id int64, params domain.EntryUpdate) (*domain.Entry, error)
	Delete(ctx context.Context, id int64) error
	LastUpdated(ctx context.Context) (*time.Time, error)
}

type mediaRepo interface {
	ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]domain.Media, error)
	GetByID(ctx context.Context, id int64) (*domain.Media, error)
	Insert(ctx context.Context, m domain.Media) (*domain.Media, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByEntryID(ctx context.Context, entryID int64) error
}

type blobStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Get(ctx context.Context, key string) (*blob.Object, error)
	Delete(ctx context.Context, key string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides timeline operations.
type Service struct {
	entries entryRepo
	media   mediaRepo
	blobs   blobStore
	txm     txManager
	token   string
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a timeline Service. token is the shared household token
// embedded into media proxy URLs.
func NewService(entries entryRepo, media mediaRepo, blobs blobStore, txm txManager, token string, logger *slog.Logger) *Service {
	return &Service{
		entries: entries,
		media:   media,
		blobs:   blobs,
		txm:     txm,
		token:   token,
		now:     time.Now,
		log:     logger.With("service", "timeline"),
	}
}

// Timeline returns one page of entries with their media joined in, newest
// first unless the query asks otherwise. An empty page short-circuits
// without the media fetch.
func (s *Service) Timeline(ctx context.Context, q TimelineQuery) ([]EntryWithMedia, error) {
	entries, err := s.entries.List(ctx, q.toFilter())
	if err != nil {
		return nil, err
	}

	return s.attachMedia(ctx, entries)
}

// Milestones returns every milestone entry with media, date descending,
// unpaginated.
func (s *Service) Milestones(ctx context.Context) ([]EntryWithMedia, error) {
	entries, err := s.entries.ListMilestones(ctx)
	if err != nil {
		return nil, err
	}

	return s.attachMedia(ctx, entries)
}

// SyncCheck returns the opaque change token: the most recent updated_at
// across all entries, nil when there are none. Clients compare tokens for
// equality only; any entry insert or update bumps it.
func (s *Service) SyncCheck(ctx context.Context) (*time.Time, error) {
	return s.entries.LastUpdated(ctx)
}

func (s *Service) attachMedia(ctx context.Context, entries []domain.Entry) ([]EntryWithMedia, error) {
	if len(entries) == 0 {
		return []EntryWithMedia{}, nil
	}

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	allMedia, err := s.media.ListByEntryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byEntry := make(map[int64][]MediaWithURL, len(entries))
	for _, m := range allMedia {
		byEntry[m.EntryID] = append(byEntry[m.EntryID], MediaWithURL{
			Media: m,
			URL:   s.ProxyURL(m.StorageKey),
		})
	}

	result := make([]EntryWithMedia, len(entries))
	for i, e := range entries {
		media := byEntry[e.ID]
		if media == nil {
			media = []MediaWithURL{}
		}
		result[i] = EntryWithMedia{Entry: e, Media: media}
	}

	return result, nil
}

// OpenMedia streams a stored object by key. No metadata lookup happens here:
// keys are unguessable and the caller already passed the auth gate.
func (s *Service) OpenMedia(ctx context.Context, storageKey string) (*blob.Object, error) {
	return s.blobs.Get(ctx, storageKey)
}

// ProxyURL builds the media proxy path for a storage key, with the shared
// token as a query parameter so plain <img> tags can authenticate.
func (s *Service) ProxyURL(storageKey string) string {
	return "/api/media/" + storageKey + "?token=" + s.token
}
