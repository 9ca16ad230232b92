package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

func TestTimelineHandler_Media_Stream(t *testing.T) {
	t.Parallel()

	var requestedKey string
	svc := &timelineServiceMock{
		OpenMediaFunc: func(_ context.Context, storageKey string) (*blob.Object, error) {
			requestedKey = storageKey
			return &blob.Object{
				Body:        io.NopCloser(strings.NewReader("jpeg-bytes")),
				ContentType: "image/jpeg",
				ETag:        `"abc123"`,
				Size:        10,
			}, nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/media/2025-03-10/1741593600000-a1b2c3.jpg", nil)
	req.SetPathValue("key", "2025-03-10/1741593600000-a1b2c3.jpg")
	rec := httptest.NewRecorder()

	h.Media(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-03-10/1741593600000-a1b2c3.jpg", requestedKey)
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, `"abc123"`, rec.Header().Get("ETag"))
	assert.Equal(t, "10", rec.Header().Get("Content-Length"))
	assert.Equal(t, "private, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}

func TestTimelineHandler_Media_NotFound(t *testing.T) {
	t.Parallel()

	svc := &timelineServiceMock{
		OpenMediaFunc: func(context.Context, string) (*blob.Object, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/media/missing.jpg", nil)
	req.SetPathValue("key", "missing.jpg")
	rec := httptest.NewRecorder()

	h.Media(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Media not found"}`, rec.Body.String())
}

func TestTimelineHandler_Media_EmptyKey(t *testing.T) {
	t.Parallel()

	h := NewTimelineHandler(&timelineServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/media/", nil)
	rec := httptest.NewRecorder()

	h.Media(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimelineHandler_DeleteMedia(t *testing.T) {
	t.Parallel()

	var deleted int64
	svc := &timelineServiceMock{
		DeleteMediaFunc: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	h := NewTimelineHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/media/9", nil)
	req.SetPathValue("id", "9")
	rec := httptest.NewRecorder()

	h.DeleteMedia(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), deleted)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestTimelineHandler_DeleteMedia_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		h := NewTimelineHandler(&timelineServiceMock{}, discardLogger())

		req := httptest.NewRequest(http.MethodDelete, "/api/media/nope", nil)
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()

		h.DeleteMedia(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid media id"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc := &timelineServiceMock{
			DeleteMediaFunc: func(context.Context, int64) error { return domain.ErrNotFound },
		}
		h := NewTimelineHandler(svc, discardLogger())

		req := httptest.NewRequest(http.MethodDelete, "/api/media/404", nil)
		req.SetPathValue("id", "404")
		rec := httptest.NewRecorder()

		h.DeleteMedia(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Media not found"}`, rec.Body.String())
	})
}
