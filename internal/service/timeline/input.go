package timeline

import (
	"io"
	"time"

	"github.com/heartmarshall/family-timeline/internal/domain"
)

// TimelineQuery carries the timeline listing parameters as they arrive from
// the HTTP layer. Page is 1-based.
type TimelineQuery struct {
	Page                     int
	Limit                    int
	Type                     string
	Search                   string
	Sort                     string
	ExcludePendingMilestones bool
}

// toFilter translates the query into a domain filter, computing
// offset = (page-1)*limit. Type "all" or empty means no type filter.
func (q TimelineQuery) toFilter() domain.EntryFilter {
	f := domain.EntryFilter{
		ExcludePendingMilestones: q.ExcludePendingMilestones,
		Limit:                    q.Limit,
	}

	if q.Type != "" && q.Type != "all" {
		t := domain.EntryType(q.Type)
		f.Type = &t
	}

	if q.Search != "" {
		s := q.Search
		f.Search = &s
	}

	if q.Sort == "asc" {
		f.SortOrder = domain.SortOrderASC
	} else {
		f.SortOrder = domain.SortOrderDESC
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	f.Normalize()
	f.Offset = (page - 1) * f.Limit

	return f
}

// EntryInput carries the create-or-update payload for an entry. ID selects
// update; Content and Date are mandatory either way.
type EntryInput struct {
	ID      *int64
	Title   *string
	Content string
	Date    *time.Time
	Type    string
	Status  string
}

// UploadFile is one file from a multipart upload, decoupled from
// mime/multipart so the service is testable with plain readers.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadInput carries the upload payload. Without EntryID a new entry is
// created first, which requires Content or at least one file.
type UploadInput struct {
	EntryID *int64
	Title   string
	Content string
	Date    *time.Time
	Type    string
	Status  string
	Files   []UploadFile
}

// EntryWithMedia is an entry joined with its media, ready for rendering.
type EntryWithMedia struct {
	domain.Entry
	Media []MediaWithURL
}

// MediaWithURL is a media row plus its token-bearing proxy URL.
type MediaWithURL struct {
	domain.Media
	URL string
}

// UploadResult reports the entry an upload landed on and the media created.
type UploadResult struct {
	EntryID int64
	Media   []MediaWithURL
}
