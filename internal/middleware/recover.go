package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
)

// Recover converts panics into a 500 response using the same JSON error
// shape the handlers emit, tagged with the request ID when one is present.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				reqID := GetRequestID(r.Context())
				m.log.Error().
					Interface("error", rec).
					Str("request_id", reqID).
					Str("stack", string(debug.Stack())).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("panic recovered")

				errBody := map[string]interface{}{
					"code":    "internal_error",
					"message": "An unexpected error occurred",
				}
				if reqID != "" {
					errBody["request_id"] = reqID
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]interface{}{"error": errBody})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
