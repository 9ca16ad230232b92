package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/heartmarshall/family-timeline/internal/domain"
)

// Media handles GET /api/media/{key...}. It streams the stored object with
// its original content type. Keys never change once written, so the response
// is cacheable for a year, but only privately: the URL carries the token.
func (h *TimelineHandler) Media(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Invalid media key")
		return
	}

	obj, err := h.svc.OpenMedia(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Media not found")
			return
		}
		h.handleError(w, r, err)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.ETag != "" {
		w.Header().Set("ETag", obj.ETag)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")

	io.Copy(w, obj.Body) //nolint:errcheck
}

type deleteMediaResponse struct {
	Success bool `json:"success"`
}

// DeleteMedia handles DELETE /api/media/{id}.
func (h *TimelineHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid media id")
		return
	}

	if err := h.svc.DeleteMedia(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Media not found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteMediaResponse{Success: true})
}
