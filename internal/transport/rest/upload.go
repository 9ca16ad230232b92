package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/family-timeline/internal/domain"
	"github.com/heartmarshall/family-timeline/internal/service/timeline"
)

// uploads are buffered to memory up to this size, larger parts spill to disk.
const maxUploadMemory = 32 << 20

type uploadMediaResponse struct {
	ID         int64  `json:"id"`
	StorageKey string `json:"storage_key"`
	URL        string `json:"url"`
}

type uploadResponse struct {
	EntryID int64                 `json:"entry_id"`
	Media   []uploadMediaResponse `json:"media"`
	Message string                `json:"message"`
}

// Upload handles POST /api/upload: multipart form with zero or more "file"
// parts plus entry fields. Without entry_id a new entry is created from the
// fields.
func (h *TimelineHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	in := timeline.UploadInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Type:    r.FormValue("type"),
		Status:  r.FormValue("status"),
	}

	if raw := r.FormValue("entry_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry id")
			return
		}
		in.EntryID = &id
	}

	if raw := r.FormValue("date"); raw != "" {
		date, err := parseDateParam(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		in.Date = &date
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["file"] {
			f, err := fh.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid multipart form")
				return
			}
			defer f.Close()

			in.Files = append(in.Files, timeline.UploadFile{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Body:        f,
			})
		}
	}

	result, err := h.svc.Upload(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	media := make([]uploadMediaResponse, len(result.Media))
	for i, m := range result.Media {
		media[i] = uploadMediaResponse{
			ID:         m.ID,
			StorageKey: m.StorageKey,
			URL:        m.URL,
		}
	}

	message := "Entry created without images"
	if len(media) > 0 {
		message = fmt.Sprintf("Uploaded %d files", len(media))
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		EntryID: result.EntryID,
		Media:   media,
		Message: message,
	})
}

// parseDateParam accepts RFC3339 timestamps and bare dates. Bare dates are
// taken as midnight UTC.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
