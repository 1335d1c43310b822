package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/database"
	"github.com/mailgate/mailgate/internal/logger"
	"github.com/mailgate/mailgate/internal/middleware"
	"github.com/mailgate/mailgate/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	rdb     *database.Redis
	log     *logger.Logger
	cfg     *config.Config
	mailSvc *service.MailService
}

// New creates a new Handler instance. rdb may be nil when rate limiting is
// disabled.
func New(rdb *database.Redis, log *logger.Logger, cfg *config.Config, mailSvc *service.MailService) *Handler {
	return &Handler{
		rdb:     rdb,
		log:     log,
		cfg:     cfg,
		mailSvc: mailSvc,
	}
}

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func writeErrorWithDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	resp := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
	if details != nil {
		resp["error"].(map[string]interface{})["details"] = details
	}
	if reqID := middleware.GetRequestID(r.Context()); reqID != "" {
		resp["error"].(map[string]interface{})["request_id"] = reqID
	}
	writeJSON(w, status, resp)
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
