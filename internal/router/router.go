package router

import (
	"net/http"

	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/handler"
	"github.com/mailgate/mailgate/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// Send endpoint (rate limited per client IP)
	sendRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  cfg.Security.RateLimiting.Limit,
		Window: cfg.Security.RateLimiting.Window,
		KeyFn:  middleware.IPKey,
	})
	mux.Handle("POST /send-email", sendRateLimit(http.HandlerFunc(h.SendEmail)))

	// Preflight target; the CORS middleware answers allowed origins with 204
	// before the request reaches here.
	mux.HandleFunc("OPTIONS /send-email", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Apply middleware stack. RequestID runs outermost so the access log,
	// panic responses, and error bodies all carry the same ID.
	var root http.Handler = mux

	// CORS
	root = mw.CORS(cfg.CORS.AllowedOrigins)(root)

	// Request logging
	root = mw.Logger(root)

	// Timing
	root = mw.Timing(root)

	// Panic recovery
	root = mw.Recover(root)

	// Request ID (outermost)
	root = mw.RequestID(root)

	return root
}
