package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/mailgate/mailgate/internal/config"
)

const defaultSMTPTimeout = 15 * time.Second

// SMTPSender implements Sender by relaying messages through a configured
// SMTP server. It supports implicit TLS (SMTPS), STARTTLS and PLAIN auth.
type SMTPSender struct {
	smtp     config.SMTPConfig
	fromAddr string // bare address for the envelope MAIL FROM
	fromHdr  string // formatted address for the From header
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		smtp:     cfg.SMTP,
		fromAddr: cfg.SenderAddress,
		fromHdr:  fromHeader(cfg),
	}
}

// Send relays the message through the SMTP server. A single attempt is made;
// connection and protocol failures are returned to the caller. SMTP has no
// provider message ID, so the returned ID is always empty.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	timeout := s.smtp.Timeout
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}

	conn, err := net.DialTimeout("tcp", s.smtp.Addr(), timeout)
	if err != nil {
		return "", fmt.Errorf("smtp: failed to connect to %s: %w", s.smtp.Addr(), err)
	}

	// Bound the whole exchange by the request deadline, falling back to the
	// configured timeout.
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(timeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return "", fmt.Errorf("smtp: failed to set deadline: %w", err)
	}

	if s.smtp.UseSSL {
		conn = tls.Client(conn, &tls.Config{ServerName: s.smtp.Host})
	}

	client, err := smtp.NewClient(conn, s.smtp.Host)
	if err != nil {
		conn.Close()
		return "", fmt.Errorf("smtp: handshake with %s failed: %w", s.smtp.Addr(), err)
	}
	defer client.Close()

	if s.smtp.UseTLS && !s.smtp.UseSSL {
		if err := client.StartTLS(&tls.Config{ServerName: s.smtp.Host}); err != nil {
			return "", fmt.Errorf("smtp: STARTTLS failed: %w", err)
		}
	}

	if s.smtp.Username != "" && s.smtp.Password != "" {
		auth := smtp.PlainAuth("", s.smtp.Username, s.smtp.Password, s.smtp.Host)
		if err := client.Auth(auth); err != nil {
			return "", fmt.Errorf("smtp: authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.fromAddr); err != nil {
		return "", fmt.Errorf("smtp: MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return "", fmt.Errorf("smtp: RCPT TO rejected: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return "", fmt.Errorf("smtp: DATA rejected: %w", err)
	}
	if _, err := w.Write([]byte(buildTextMessage(s.fromHdr, msg))); err != nil {
		return "", fmt.Errorf("smtp: failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("smtp: message rejected: %w", err)
	}

	if err := client.Quit(); err != nil {
		return "", fmt.Errorf("smtp: QUIT failed: %w", err)
	}
	return "", nil
}

// buildTextMessage renders a plain-text RFC 5322 message with CRLF line
// endings as required by the SMTP DATA command.
func buildTextMessage(from string, msg Message) string {
	return strings.Join([]string{
		"From: " + from,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 8bit",
		"",
		msg.TextBody,
		"",
	}, "\r\n")
}
