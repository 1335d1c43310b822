package handler

import (
	"errors"
	"net/http"

	"github.com/mailgate/mailgate/internal/email"
	"github.com/mailgate/mailgate/internal/service"
)

// SendEmail handles POST /send-email
// Validates the request and dispatches it once to the configured transport.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiverEmail string `json:"receiver_email"`
		Subject       string `json:"subject"`
		BodyText      string `json:"body_text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body is not valid JSON")
		return
	}

	result, err := h.mailSvc.Send(r.Context(), service.SendRequest{
		ReceiverEmail: req.ReceiverEmail,
		Subject:       req.Subject,
		BodyText:      req.BodyText,
	})
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeErrorWithDetails(w, r, http.StatusBadRequest, "missing_field", vErr.Error(), map[string]interface{}{
				"missing": vErr.Missing,
			})
		case errors.Is(err, service.ErrInvalidRecipient):
			writeError(w, http.StatusUnprocessableEntity, "invalid_email", "receiver_email is not a valid email address")
		case errors.Is(err, service.ErrSubjectMalformed):
			writeError(w, http.StatusUnprocessableEntity, "invalid_subject", "Subject must not contain control characters")
		case errors.Is(err, service.ErrSubjectTooLong):
			writeError(w, http.StatusUnprocessableEntity, "subject_too_long", "Subject is too long")
		case errors.Is(err, email.ErrMissingCredentials):
			h.log.Error().Err(err).Msg("email transport misconfigured")
			writeError(w, http.StatusInternalServerError, "config_error", "Email transport is not configured")
		default:
			h.log.Error().Err(err).Msg("email delivery failed")
			writeError(w, http.StatusBadGateway, "delivery_failed", "Failed to deliver email")
		}
		return
	}

	resp := map[string]interface{}{
		"message": "Email sent successfully",
		"mode":    result.Mode,
	}
	if result.MessageID != "" {
		resp["message_id"] = result.MessageID
	}
	writeJSON(w, http.StatusOK, resp)
}
