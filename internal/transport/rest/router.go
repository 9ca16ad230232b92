package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/family-timeline/internal/config"
	"github.com/heartmarshall/family-timeline/internal/transport/middleware"
)

// TokenValidator gates the protected /api subtree.
type TokenValidator interface {
	ValidateToken(token string) bool
}

// NewRouter assembles the HTTP handler tree. Login and health endpoints are
// open; everything else under /api requires the shared token. Login is the
// only rate-limited route.
func NewRouter(
	cfg config.Config,
	logger *slog.Logger,
	validator TokenValidator,
	limiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	timelineHandler *TimelineHandler,
	healthHandler *HealthHandler,
) http.Handler {
	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/timeline", timelineHandler.Timeline)
	protected.HandleFunc("GET /api/milestones", timelineHandler.Milestones)
	protected.HandleFunc("GET /api/sync-check", timelineHandler.SyncCheck)
	protected.HandleFunc("POST /api/entry", timelineHandler.SaveEntry)
	protected.HandleFunc("DELETE /api/entry/{id}", timelineHandler.DeleteEntry)
	protected.HandleFunc("POST /api/upload", timelineHandler.Upload)
	protected.HandleFunc("GET /api/media/{key...}", timelineHandler.Media)
	protected.HandleFunc("DELETE /api/media/{id}", timelineHandler.DeleteMedia)
	protected.HandleFunc("/", notFound)

	root := http.NewServeMux()
	root.Handle("POST /api/login",
		limiter.Limit(cfg.RateLimit.LoginPerMinute)(http.HandlerFunc(authHandler.Login)))
	root.Handle("/api/", middleware.Auth(validator)(protected))
	root.HandleFunc("GET /health", healthHandler.Health)
	root.HandleFunc("GET /ready", healthHandler.Ready)
	root.HandleFunc("GET /live", healthHandler.Live)
	root.HandleFunc("/", notFound)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(root)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
