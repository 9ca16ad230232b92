package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/family-timeline/internal/domain"
	"github.com/heartmarshall/family-timeline/internal/service/timeline"
)

func TestTimelineHandler_Timeline_QueryParsing(t *testing.T) {
	t.Parallel()

	var got timeline.TimelineQuery
	svc := &timelineServiceMock{
		TimelineFunc: func(_ context.Context, q timeline.TimelineQuery) ([]timeline.EntryWithMedia, error) {
			got = q
			return []timeline.EntryWithMedia{}, nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/api/timeline?page=3&limit=20&type=milestone&search=beach&sort=asc&exclude_pending=true", nil)
	rec := httptest.NewRecorder()

	h.Timeline(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, timeline.TimelineQuery{
		Page:                     3,
		Limit:                    20,
		Type:                     "milestone",
		Search:                   "beach",
		Sort:                     "asc",
		ExcludePendingMilestones: true,
	}, got)
}

func TestTimelineHandler_Timeline_BadParamsFallBack(t *testing.T) {
	t.Parallel()

	var got timeline.TimelineQuery
	svc := &timelineServiceMock{
		TimelineFunc: func(_ context.Context, q timeline.TimelineQuery) ([]timeline.EntryWithMedia, error) {
			got = q
			return []timeline.EntryWithMedia{}, nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/timeline?page=abc&exclude_pending=yes", nil)
	h.Timeline(httptest.NewRecorder(), req)

	assert.Equal(t, 1, got.Page)
	assert.False(t, got.ExcludePendingMilestones)
}

func TestTimelineHandler_Timeline_ResponseShape(t *testing.T) {
	t.Parallel()

	title := "First steps"
	takenAt := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	entry := testEntry(7)
	entry.Title = &title

	svc := &timelineServiceMock{
		TimelineFunc: func(context.Context, timeline.TimelineQuery) ([]timeline.EntryWithMedia, error) {
			return []timeline.EntryWithMedia{
				{
					Entry: entry,
					Media: []timeline.MediaWithURL{
						{
							Media: domain.Media{
								ID:       12,
								EntryID:  7,
								FileType: "image/jpeg",
								TakenAt:  &takenAt,
							},
							URL: "/api/media/2025-03-10/abc.jpg?token=tok",
						},
					},
				},
				{Entry: testEntry(8), Media: []timeline.MediaWithURL{}},
			}, nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Timeline(rec, httptest.NewRequest(http.MethodGet, "/api/timeline", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)

	first := body[0]
	assert.Equal(t, float64(7), first["id"])
	assert.Equal(t, "First steps", first["title"])
	assert.Equal(t, "daily", first["type"])
	assert.Equal(t, "completed", first["status"])

	media, ok := first["media"].([]any)
	require.True(t, ok)
	require.Len(t, media, 1)
	m := media[0].(map[string]any)
	assert.Equal(t, "/api/media/2025-03-10/abc.jpg?token=tok", m["url"])
	assert.Equal(t, "image/jpeg", m["file_type"])

	// Entries without media serialize as [], never null.
	second := body[1]
	assert.NotNil(t, second["media"])
	assert.Empty(t, second["media"])
	assert.Nil(t, second["title"])
}

func TestTimelineHandler_Milestones(t *testing.T) {
	t.Parallel()

	svc := &timelineServiceMock{
		MilestonesFunc: func(context.Context) ([]timeline.EntryWithMedia, error) {
			e := testEntry(1)
			e.Type = domain.EntryTypeMilestone
			e.Status = domain.EntryStatusPending
			return []timeline.EntryWithMedia{{Entry: e, Media: []timeline.MediaWithURL{}}}, nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Milestones(rec, httptest.NewRequest(http.MethodGet, "/api/milestones", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "milestone", body[0]["type"])
	assert.Equal(t, "pending", body[0]["status"])
}

func TestTimelineHandler_SyncCheck(t *testing.T) {
	t.Parallel()

	last := time.Date(2025, 3, 10, 8, 0, 0, 123456789, time.UTC)
	svc := &timelineServiceMock{
		SyncCheckFunc: func(context.Context) (*time.Time, error) {
			return &last, nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.SyncCheck(rec, httptest.NewRequest(http.MethodGet, "/api/sync-check", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"last_updated":"2025-03-10T08:00:00.123456789Z"}`, rec.Body.String())
}

func TestTimelineHandler_SyncCheck_Empty(t *testing.T) {
	t.Parallel()

	svc := &timelineServiceMock{
		SyncCheckFunc: func(context.Context) (*time.Time, error) {
			return nil, nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.SyncCheck(rec, httptest.NewRequest(http.MethodGet, "/api/sync-check", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"last_updated":null}`, rec.Body.String())
}

func TestTimelineHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        domain.NewValidationError("Content is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Content is required"}`,
		},
		{
			name:       "not found",
			err:        domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not found"}`,
		},
		{
			name:       "internal",
			err:        errors.New("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &timelineServiceMock{
				TimelineFunc: func(context.Context, timeline.TimelineQuery) ([]timeline.EntryWithMedia, error) {
					return nil, tt.err
				},
			}
			h := NewTimelineHandler(svc, discardLogger())

			rec := httptest.NewRecorder()
			h.Timeline(rec, httptest.NewRequest(http.MethodGet, "/api/timeline", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
