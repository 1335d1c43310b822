package email

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/logger"
)

// Sender is the interface that all email transports must implement.
// This abstraction allows swapping transports (offline sink, SMTP, SES,
// Gmail) without changing business logic.
type Sender interface {
	// Send sends an email to the specified recipient.
	// Returns the transport's message ID when the transport provides one.
	Send(ctx context.Context, msg Message) (string, error)
}

// Message represents an email message to be sent.
type Message struct {
	To       string // recipient email address
	Subject  string // email subject
	TextBody string // plain-text body
}

// ErrMissingCredentials indicates the configured transport has no usable
// credentials. Handlers map it to a configuration error rather than a
// delivery failure.
var ErrMissingCredentials = errors.New("email: transport credentials are missing")

// Mode identifies the outbound transport, fixed for the process lifetime.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeSMTP    Mode = "smtp"
	ModeSES     Mode = "ses"
	ModeGmail   Mode = "gmail"
)

// ParseMode parses a transport mode string. "local" is accepted as an alias
// for the offline sink.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "offline", "local", "":
		return ModeOffline, nil
	case "smtp":
		return ModeSMTP, nil
	case "ses":
		return ModeSES, nil
	case "gmail":
		return ModeGmail, nil
	default:
		return "", fmt.Errorf("email: unknown mode %q (use offline|smtp|ses|gmail)", s)
	}
}

// New builds the Sender selected by cfg.Mode. Transport configuration is
// validated here so a misconfigured service fails at startup instead of
// answering errors on every request.
func New(ctx context.Context, cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeOffline:
		return NewOfflineSender(cfg, log, os.Stdout), nil
	case ModeSMTP:
		if cfg.SMTP.Host == "" {
			return nil, errors.New("email: smtp.host is required in smtp mode")
		}
		return NewSMTPSender(cfg), nil
	case ModeSES:
		return NewSESSender(ctx, cfg)
	case ModeGmail:
		return NewGmailSender(ctx, cfg)
	}
	return nil, fmt.Errorf("email: unknown mode %q", mode)
}

// fromHeader formats the configured sender as an RFC 5322 address.
// Returns "Name <email>" if a display name is configured, otherwise just
// the address.
func fromHeader(cfg config.EmailConfig) string {
	if cfg.SenderName != "" {
		return fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.SenderAddress)
	}
	return cfg.SenderAddress
}
