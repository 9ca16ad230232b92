package timeline

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

// entryRepoMock implements entryRepo with per-method function fields.
// Calling a method whose field is nil panics, which surfaces unexpected
// repo calls as test failures.
type entryRepoMock struct {
	ListFunc           func(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error)
	ListMilestonesFunc func(ctx context.Context) ([]domain.Entry, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.Entry, error)
	InsertFunc         func(ctx context.Context, e domain.Entry) (*domain.Entry, error)
	UpdateFunc         func(ctx context.Context, id int64, params domain.EntryUpdate) (*domain.Entry, error)
	DeleteFunc         func(ctx context.Context, id int64) error
	LastUpdatedFunc    func(ctx context.Context) (*time.Time, error)
}

func (m *entryRepoMock) List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error) {
	return m.ListFunc(ctx, f)
}

func (m *entryRepoMock) ListMilestones(ctx context.Context) ([]domain.Entry, error) {
	return m.ListMilestonesFunc(ctx)
}

func (m *entryRepoMock) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *entryRepoMock) Insert(ctx context.Context, e domain.Entry) (*domain.Entry, error) {
	return m.InsertFunc(ctx, e)
}

func (m *entryRepoMock) Update(ctx context.Context, id int64, params domain.EntryUpdate) (*domain.Entry, error) {
	return m.UpdateFunc(ctx, id, params)
}

func (m *entryRepoMock) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func (m *entryRepoMock) LastUpdated(ctx context.Context) (*time.Time, error) {
	return m.LastUpdatedFunc(ctx)
}

type mediaRepoMock struct {
	ListByEntryIDsFunc  func(ctx context.Context, entryIDs []int64) ([]domain.Media, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*domain.Media, error)
	InsertFunc          func(ctx context.Context, m domain.Media) (*domain.Media, error)
	DeleteByIDFunc      func(ctx context.Context, id int64) error
	DeleteByEntryIDFunc func(ctx context.Context, entryID int64) error
}

func (m *mediaRepoMock) ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]domain.Media, error) {
	return m.ListByEntryIDsFunc(ctx, entryIDs)
}

func (m *mediaRepoMock) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mediaRepoMock) Insert(ctx context.Context, md domain.Media) (*domain.Media, error) {
	return m.InsertFunc(ctx, md)
}

func (m *mediaRepoMock) DeleteByID(ctx context.Context, id int64) error {
	return m.DeleteByIDFunc(ctx, id)
}

func (m *mediaRepoMock) DeleteByEntryID(ctx context.Context, entryID int64) error {
	return m.DeleteByEntryIDFunc(ctx, entryID)
}

// blobStoreMock records deletes under a mutex since DeleteEntry fans them
// out concurrently.
type blobStoreMock struct {
	PutFunc func(ctx context.Context, key string, body io.Reader, contentType string) error
	GetFunc func(ctx context.Context, key string) (*blob.Object, error)

	mu        sync.Mutex
	deleted   []string
	deleteErr map[string]error
}

func (m *blobStoreMock) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	return m.PutFunc(ctx, key, body, contentType)
}

func (m *blobStoreMock) Get(ctx context.Context, key string) (*blob.Object, error) {
	return m.GetFunc(ctx, key)
}

func (m *blobStoreMock) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	return m.deleteErr[key]
}

func (m *blobStoreMock) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// txManagerMock runs the callback directly and counts invocations.
type txManagerMock struct {
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// newTestService builds a Service around the mocks with a fixed clock.
func newTestService(entries *entryRepoMock, media *mediaRepoMock, blobs *blobStoreMock, txm *txManagerMock) *Service {
	if txm == nil {
		txm = &txManagerMock{}
	}
	s := NewService(entries, media, blobs, txm, "test-token", discardLogger())
	s.now = func() time.Time {
		return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}
