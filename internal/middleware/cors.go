package middleware

import (
	"net/http"
	"slices"
	"strings"
)

const (
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Request-ID"
)

// CORS returns middleware that handles cross-origin requests. Preflight
// OPTIONS requests are answered with 204; all other responses carry the
// access-control headers when the origin is allowed. "*" in allowedOrigins
// permits any origin.
func (m *Middleware) CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	hasWildcard := slices.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Not a CORS request
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed := hasWildcard || slices.ContainsFunc(allowedOrigins, func(o string) bool {
				return strings.EqualFold(o, origin)
			})
			if !allowed {
				// No CORS headers; the browser blocks the response
				next.ServeHTTP(w, r)
				return
			}

			headers := w.Header()
			headers.Add("Vary", "Origin")
			if hasWildcard {
				headers.Set("Access-Control-Allow-Origin", "*")
			} else {
				headers.Set("Access-Control-Allow-Origin", origin)
			}

			if r.Method == http.MethodOptions {
				headers.Set("Access-Control-Allow-Methods", corsAllowMethods)
				headers.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
