package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/family-timeline/internal/domain"
	"github.com/heartmarshall/family-timeline/internal/service/timeline"
)

type saveEntryRequest struct {
	ID      *int64     `json:"id"`
	Title   *string    `json:"title"`
	Content string     `json:"content"`
	Date    *time.Time `json:"date"`
	Type    string     `json:"type"`
	Status  string     `json:"status"`
}

// SaveEntry handles POST /api/entry. A body with an id updates that entry,
// otherwise a new one is created.
func (h *TimelineHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var req saveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.svc.SaveEntry(r.Context(), timeline.EntryInput{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
		Date:    req.Date,
		Type:    req.Type,
		Status:  req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(timeline.EntryWithMedia{
		Entry: *entry,
		Media: []timeline.MediaWithURL{},
	}))
}

type deleteEntryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteEntry handles DELETE /api/entry/{id}. Media rows and blobs owned by
// the entry go with it.
func (h *TimelineHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteEntryResponse{
		Success: true,
		Message: "Entry and associated media deleted",
	})
}
