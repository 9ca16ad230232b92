package middleware

import (
	"net/http"
	"strconv"

	"github.com/heartmarshall/family-timeline/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing.
// The allowed origin is attached to every response, including errors,
// so browser clients can always read the body. Preflight OPTIONS
// requests are answered immediately without touching auth or handlers.
func CORS(cfg config.CORSConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
