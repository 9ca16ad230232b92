package timeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

// Upload attaches photos to an entry, creating the entry first when no
// entry_id is given. Non-image and empty files are skipped silently; a
// zero-image upload with content is a legitimate "text-only entry" path.
// Per file: generate key → put blob → insert media row; a failure on either
// store aborts the upload (files already stored keep their rows).
func (s *Service) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	entryID, takenAt, err := s.resolveUploadEntry(ctx, in)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{EntryID: entryID, Media: []MediaWithURL{}}

	for _, f := range in.Files {
		if f.Size == 0 || !strings.HasPrefix(f.ContentType, "image/") {
			s.log.DebugContext(ctx, "skipping non-image upload part",
				slog.String("filename", f.Filename),
				slog.String("content_type", f.ContentType),
			)
			continue
		}

		key := blob.GenerateKey(f.Filename, s.now())

		if err := s.blobs.Put(ctx, key, f.Body, f.ContentType); err != nil {
			return nil, err
		}

		row, err := s.media.Insert(ctx, domain.Media{
			EntryID:    entryID,
			StorageKey: key,
			FileType:   f.ContentType,
			TakenAt:    &takenAt,
		})
		if err != nil {
			return nil, err
		}

		result.Media = append(result.Media, MediaWithURL{
			Media: *row,
			URL:   s.ProxyURL(row.StorageKey),
		})
	}

	return result, nil
}

// resolveUploadEntry returns the entry id to attach media to, creating the
// entry when the input has no entry_id, plus the date used as the media
// taken_at default (the owning entry's date unless the form supplied one).
func (s *Service) resolveUploadEntry(ctx context.Context, in UploadInput) (int64, time.Time, error) {
	if in.EntryID != nil {
		entry, err := s.entries.GetByID(ctx, *in.EntryID)
		if err != nil {
			return 0, time.Time{}, err
		}
		if in.Date != nil {
			return entry.ID, *in.Date, nil
		}
		return entry.ID, entry.Date, nil
	}

	if in.Content == "" && len(in.Files) == 0 {
		return 0, time.Time{}, domain.NewValidationError("Content or file is required for new entry")
	}

	entryType, status, err := resolveTypeStatus(in.Type, in.Status)
	if err != nil {
		return 0, time.Time{}, err
	}

	date := s.now().UTC().Truncate(24 * time.Hour)
	if in.Date != nil {
		date = *in.Date
	}

	entry := domain.Entry{
		Content: in.Content,
		Date:    date,
		Type:    entryType,
		Status:  status,
	}
	if in.Title != "" {
		title := in.Title
		entry.Title = &title
	}

	created, err := s.entries.Insert(ctx, entry)
	if err != nil {
		return 0, time.Time{}, err
	}
	return created.ID, created.Date, nil
}
