package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/domain"
	"github.com/heartmarshall/family-timeline/internal/service/timeline"
)

// timelineService defines the minimal interface needed by TimelineHandler.
type timelineService interface {
	Timeline(ctx context.Context, q timeline.TimelineQuery) ([]timeline.EntryWithMedia, error)
	Milestones(ctx context.Context) ([]timeline.EntryWithMedia, error)
	SyncCheck(ctx context.Context) (*time.Time, error)
	SaveEntry(ctx context.Context, in timeline.EntryInput) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
	DeleteMedia(ctx context.Context, id int64) error
	Upload(ctx context.Context, in timeline.UploadInput) (*timeline.UploadResult, error)
	OpenMedia(ctx context.Context, storageKey string) (*blob.Object, error)
}

// TimelineHandler serves the timeline REST endpoints. Entry, upload, and
// media methods live in their own files.
type TimelineHandler struct {
	svc timelineService
	log *slog.Logger
}

// NewTimelineHandler creates a TimelineHandler.
func NewTimelineHandler(svc timelineService, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{svc: svc, log: logger.With("handler", "timeline")}
}

type entryResponse struct {
	ID        int64           `json:"id"`
	Title     *string         `json:"title"`
	Content   string          `json:"content"`
	Date      time.Time       `json:"date"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Media     []mediaResponse `json:"media"`
}

type mediaResponse struct {
	ID       int64      `json:"id"`
	EntryID  int64      `json:"entry_id"`
	URL      string     `json:"url"`
	FileType string     `json:"file_type"`
	TakenAt  *time.Time `json:"taken_at,omitempty"`
}

// Timeline handles GET /api/timeline.
func (h *TimelineHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := timeline.TimelineQuery{
		Page:                     parseIntParam(q.Get("page"), 1),
		Limit:                    parseIntParam(q.Get("limit"), 0),
		Type:                     q.Get("type"),
		Search:                   q.Get("search"),
		Sort:                     q.Get("sort"),
		ExcludePendingMilestones: q.Get("exclude_pending") == "true",
	}

	entries, err := h.svc.Timeline(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

// Milestones handles GET /api/milestones.
func (h *TimelineHandler) Milestones(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Milestones(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

type syncResponse struct {
	LastUpdated *string `json:"last_updated"`
}

// SyncCheck handles GET /api/sync-check. The returned token is opaque;
// clients compare it for equality to decide whether to refetch.
func (h *TimelineHandler) SyncCheck(w http.ResponseWriter, r *http.Request) {
	last, err := h.svc.SyncCheck(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var resp syncResponse
	if last != nil {
		s := last.UTC().Format(time.RFC3339Nano)
		resp.LastUpdated = &s
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TimelineHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toEntryResponses(entries []timeline.EntryWithMedia) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return out
}

func toEntryResponse(e timeline.EntryWithMedia) entryResponse {
	media := make([]mediaResponse, len(e.Media))
	for i, m := range e.Media {
		media[i] = mediaResponse{
			ID:       m.ID,
			EntryID:  m.EntryID,
			URL:      m.URL,
			FileType: m.FileType,
			TakenAt:  m.TakenAt,
		}
	}
	return entryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		Date:      e.Date,
		Type:      e.Type.String(),
		Status:    e.Status.String(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Media:     media,
	}
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
