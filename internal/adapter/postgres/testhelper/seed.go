package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/family-timeline/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedEntry creates an entry with the given overrides applied. Returns the
// row as stored.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, overrides ...func(*domain.Entry)) domain.Entry {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	entry := domain.Entry{
		Content: "Test entry " + suffix,
		Date:    time.Now().UTC().Truncate(time.Microsecond),
		Type:    domain.EntryTypeDaily,
		Status:  domain.EntryStatusCompleted,
	}
	for _, o := range overrides {
		o(&entry)
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO entries (title, content, date, type, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		entry.Title, entry.Content, entry.Date, string(entry.Type), string(entry.Status),
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert: %v", err)
	}

	return entry
}

// SeedMedia creates a media row attached to the given entry.
func SeedMedia(t *testing.T, pool *pgxpool.Pool, entryID int64) domain.Media {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	media := domain.Media{
		EntryID:    entryID,
		StorageKey: "2025-01-15/1736899200000-" + suffix + ".jpg",
		FileType:   "image/jpeg",
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO media (entry_id, storage_key, file_type, taken_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		media.EntryID, media.StorageKey, media.FileType, media.TakenAt,
	).Scan(&media.ID, &media.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedMedia insert: %v", err)
	}

	return media
}
