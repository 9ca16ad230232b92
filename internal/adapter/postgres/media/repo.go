// Package media implements the media metadata repository using PostgreSQL.
// Rows point at blobs in the object store via storage_key; blob lifecycle is
// the service layer's concern.
package media

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/family-timeline/internal/adapter/postgres"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

const table = "media"

var columns = []string{"id", "entry_id", "storage_key", "file_type", "taken_at", "created_at"}

// Repo provides media metadata persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new media repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListByEntryIDs returns media rows for the given entry ids (batch read for
// the timeline join). An empty id set returns an empty slice without touching
// the database.
func (r *Repo) ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]domain.Media, error) {
	if len(entryIDs) == 0 {
		return []domain.Media{}, nil
	}

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"entry_id": entryIDs}).
		OrderBy("entry_id", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list media by entry_ids: build query: %w", err)
	}

	result := []domain.Media{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &result, sql, args...); err != nil {
		return nil, fmt.Errorf("list media by entry_ids: %w", err)
	}

	return result, nil
}

// GetByID returns a single media row or domain.ErrNotFound. Used to look up
// the storage key before a blob delete.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("get media: build query: %w", err)
	}

	var m domain.Media
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &m, sql, args...); err != nil {
		return nil, postgres.MapError(err, "media", id)
	}

	return &m, nil
}

// Insert creates a media row and returns it.
func (r *Repo) Insert(ctx context.Context, m domain.Media) (*domain.Media, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("entry_id", "storage_key", "file_type", "taken_at").
		Values(m.EntryID, m.StorageKey, m.FileType, m.TakenAt).
		Suffix("RETURNING id, entry_id, storage_key, file_type, taken_at, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("insert media: build query: %w", err)
	}

	var created domain.Media
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "media", m.EntryID)
	}

	return &created, nil
}

// ListStorageKeys returns every storage key referenced by a media row. Used
// by the offline orphan cleanup to compare against the bucket contents.
func (r *Repo) ListStorageKeys(ctx context.Context) ([]string, error) {
	sql, args, err := postgres.Builder().
		Select("storage_key").
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list storage keys: build query: %w", err)
	}

	keys := []string{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &keys, sql, args...); err != nil {
		return nil, fmt.Errorf("list storage keys: %w", err)
	}

	return keys, nil
}

// DeleteByID removes one media row. Returns domain.ErrNotFound when absent.
func (r *Repo) DeleteByID(ctx context.Context, id int64) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("delete media: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "media", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("media %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByEntryID removes all media rows owned by an entry. Deleting for an
// entry with no media is not an error.
func (r *Repo) DeleteByEntryID(ctx context.Context, entryID int64) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"entry_id": entryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("delete media by entry_id: build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "media", entryID)
	}

	return nil
}
