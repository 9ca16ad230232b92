// Package entry implements the timeline entry repository using PostgreSQL.
// All queries are assembled with squirrel so filter logic can be exercised
// without a live database.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/family-timeline/internal/adapter/postgres"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

const table = "entries"

var columns = []string{"id", "title", "content", "date", "type", "status", "created_at", "updated_at"}

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns entries matching the filter, ordered by date and paginated.
// The filter is normalized (defaults, clamps) before use.
func (r *Repo) List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error) {
	f.Normalize()

	sql, args, err := buildListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("list entries: build query: %w", err)
	}

	entries := []domain.Entry{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

// ListMilestones returns every milestone entry, newest date first, unpaginated.
func (r *Repo) ListMilestones(ctx context.Context) ([]domain.Entry, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"type": domain.EntryTypeMilestone}).
		OrderBy("date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list milestones: build query: %w", err)
	}

	entries := []domain.Entry{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}

	return entries, nil
}

// GetByID returns a single entry or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("get entry: build query: %w", err)
	}

	var e domain.Entry
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &e, sql, args...); err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}

	return &e, nil
}

// Insert creates an entry and returns the stored row. created_at and
// updated_at are stamped server-side.
func (r *Repo) Insert(ctx context.Context, e domain.Entry) (*domain.Entry, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("title", "content", "date", "type", "status").
		Values(e.Title, e.Content, e.Date, e.Type, e.Status).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("insert entry: build query: %w", err)
	}

	var created domain.Entry
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "entry", 0)
	}

	return &created, nil
}

// Update applies a partial field set to an entry and returns the stored row.
// updated_at is stamped on every call regardless of which fields changed;
// the sync-check token is max(updated_at), so the stamp is load-bearing.
func (r *Repo) Update(ctx context.Context, id int64, params domain.EntryUpdate) (*domain.Entry, error) {
	q := postgres.Builder().
		Update(table).
		Set("updated_at", time.Now().UTC())

	if params.Title != nil {
		q = q.Set("title", *params.Title)
	}
	if params.Content != nil {
		q = q.Set("content", *params.Content)
	}
	if params.Date != nil {
		q = q.Set("date", *params.Date)
	}
	if params.Type != nil {
		q = q.Set("type", *params.Type)
	}
	if params.Status != nil {
		q = q.Set("status", *params.Status)
	}

	sql, args, err := q.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("update entry: build query: %w", err)
	}

	var updated domain.Entry
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &updated, sql, args...); err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}

	return &updated, nil
}

// Delete removes an entry row. Returns domain.ErrNotFound when the id has no row.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("delete entry: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// LastUpdated returns the most recent updated_at across all entries, or nil
// when the table is empty. Callers treat the value as an opaque sync token.
func (r *Repo) LastUpdated(ctx context.Context) (*time.Time, error) {
	sql, _, err := postgres.Builder().
		Select("max(updated_at)").
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("last updated: build query: %w", err)
	}

	var last *time.Time
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql).Scan(&last); err != nil {
		return nil, fmt.Errorf("last updated: %w", err)
	}

	return last, nil
}

func returningColumns() string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
