package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mailgate/mailgate/internal/email"
	"github.com/mailgate/mailgate/internal/logger"
)

// Mail dispatch errors
var (
	ErrInvalidRecipient = errors.New("receiver_email is not a valid email address")
	ErrSubjectTooLong   = errors.New("subject is too long")
	ErrSubjectMalformed = errors.New("subject contains control characters")
)

// maxSubjectLength is the RFC 5322 line-length ceiling for the Subject
// header, counted in characters.
const maxSubjectLength = 998

// emailPattern is a deliberately loose grammar: one "@", a dot in the domain,
// no whitespace. Real deliverability is the transport's problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError reports required request fields that are missing or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required field(s): " + strings.Join(e.Missing, ", ")
}

// SendRequest is a validated-on-entry request to send a single email.
type SendRequest struct {
	ReceiverEmail string
	Subject       string
	BodyText      string
}

// SendResult describes a completed dispatch.
type SendResult struct {
	Mode      string
	MessageID string
}

// MailService validates send requests and dispatches them to the configured
// transport. One attempt per request; duplicate requests send duplicate
// emails.
type MailService struct {
	sender email.Sender
	mode   email.Mode
	log    *logger.Logger
}

// NewMailService creates a new MailService.
func NewMailService(sender email.Sender, mode email.Mode, log *logger.Logger) *MailService {
	return &MailService{
		sender: sender,
		mode:   mode,
		log:    log.WithComponent("mail_service"),
	}
}

// Send validates the request and dispatches it to the transport.
// Validation failures are returned as *ValidationError (missing fields),
// ErrInvalidRecipient or ErrSubjectTooLong; everything else is a transport
// error.
func (s *MailService) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	msg := email.Message{
		To:       strings.TrimSpace(req.ReceiverEmail),
		Subject:  req.Subject,
		TextBody: req.BodyText,
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		s.log.Error().Err(err).Str("to", msg.To).Str("mode", string(s.mode)).Msg("email dispatch failed")
		return nil, err
	}

	s.log.Info().Str("to", msg.To).Str("mode", string(s.mode)).Str("message_id", id).Msg("email dispatched")

	return &SendResult{Mode: string(s.mode), MessageID: id}, nil
}

// validate checks field presence first (reporting every missing field), then
// the recipient grammar, then the subject length.
func validate(req SendRequest) error {
	var missing []string
	if strings.TrimSpace(req.ReceiverEmail) == "" {
		missing = append(missing, "receiver_email")
	}
	if strings.TrimSpace(req.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(req.BodyText) == "" {
		missing = append(missing, "body_text")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	if !emailPattern.MatchString(strings.TrimSpace(req.ReceiverEmail)) {
		return ErrInvalidRecipient
	}
	// The subject becomes a raw RFC 5322 header line; a CR or LF in it would
	// let the caller append headers of their own.
	if strings.ContainsFunc(req.Subject, unicode.IsControl) {
		return ErrSubjectMalformed
	}
	if utf8.RuneCountInString(req.Subject) > maxSubjectLength {
		return ErrSubjectTooLong
	}
	return nil
}
