package middleware

import (
	"fmt"
	"net/http"
)

// writeJSONError writes a minimal JSON error body. The message must not
// contain characters that need JSON escaping.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}
