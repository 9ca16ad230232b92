package middleware

import (
	"net/http"
	"strings"
)

type tokenValidator interface {
	ValidateToken(token string) bool
}

// Auth returns middleware that requires a valid shared token on every
// request. The token is read from the Authorization header (Bearer scheme)
// or, as a fallback, from the "token" query parameter so that plain <img>
// tags can load media without custom headers.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" || !validator.ValidateToken(token) {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
