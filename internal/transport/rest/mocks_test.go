package rest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/domain"
	"github.com/heartmarshall/family-timeline/internal/service/timeline"
)

type timelineServiceMock struct {
	TimelineFunc    func(ctx context.Context, q timeline.TimelineQuery) ([]timeline.EntryWithMedia, error)
	MilestonesFunc  func(ctx context.Context) ([]timeline.EntryWithMedia, error)
	SyncCheckFunc   func(ctx context.Context) (*time.Time, error)
	SaveEntryFunc   func(ctx context.Context, in timeline.EntryInput) (*domain.Entry, error)
	DeleteEntryFunc func(ctx context.Context, id int64) error
	DeleteMediaFunc func(ctx context.Context, id int64) error
	UploadFunc      func(ctx context.Context, in timeline.UploadInput) (*timeline.UploadResult, error)
	OpenMediaFunc   func(ctx context.Context, storageKey string) (*blob.Object, error)
}

func (m *timelineServiceMock) Timeline(ctx context.Context, q timeline.TimelineQuery) ([]timeline.EntryWithMedia, error) {
	return m.TimelineFunc(ctx, q)
}

func (m *timelineServiceMock) Milestones(ctx context.Context) ([]timeline.EntryWithMedia, error) {
	return m.MilestonesFunc(ctx)
}

func (m *timelineServiceMock) SyncCheck(ctx context.Context) (*time.Time, error) {
	return m.SyncCheckFunc(ctx)
}

func (m *timelineServiceMock) SaveEntry(ctx context.Context, in timeline.EntryInput) (*domain.Entry, error) {
	return m.SaveEntryFunc(ctx, in)
}

func (m *timelineServiceMock) DeleteEntry(ctx context.Context, id int64) error {
	return m.DeleteEntryFunc(ctx, id)
}

func (m *timelineServiceMock) DeleteMedia(ctx context.Context, id int64) error {
	return m.DeleteMediaFunc(ctx, id)
}

func (m *timelineServiceMock) Upload(ctx context.Context, in timeline.UploadInput) (*timeline.UploadResult, error) {
	return m.UploadFunc(ctx, in)
}

func (m *timelineServiceMock) OpenMedia(ctx context.Context, storageKey string) (*blob.Object, error) {
	return m.OpenMediaFunc(ctx, storageKey)
}

type authServiceMock struct {
	LoginFunc func(password string) (string, error)
}

func (m *authServiceMock) Login(password string) (string, error) {
	return m.LoginFunc(password)
}

type pingerMock struct {
	PingFunc func(ctx context.Context) error
}

func (m *pingerMock) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEntry(id int64) domain.Entry {
	return domain.Entry{
		ID:        id,
		Content:   "first steps",
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Type:      domain.EntryTypeDaily,
		Status:    domain.EntryStatusCompleted,
		CreatedAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	}
}
