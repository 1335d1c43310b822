package email

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/logger"
)

// OfflineSender implements Sender by writing the message to a local sink
// instead of delivering it. Used for local development and tests; it never
// fails.
type OfflineSender struct {
	from string
	log  *logger.Logger
	out  io.Writer
}

// NewOfflineSender creates an OfflineSender that writes a human-readable
// copy of each message to out.
func NewOfflineSender(cfg config.EmailConfig, log *logger.Logger, out io.Writer) *OfflineSender {
	return &OfflineSender{
		from: fromHeader(cfg),
		log:  log.WithComponent("email_offline"),
		out:  out,
	}
}

// Send writes the message to the sink.
func (s *OfflineSender) Send(_ context.Context, msg Message) (string, error) {
	id := uuid.New().String()

	fmt.Fprintln(s.out, "=== Simulated Email ===")
	fmt.Fprintf(s.out, "From: %s\n", s.from)
	fmt.Fprintf(s.out, "To: %s\n", msg.To)
	fmt.Fprintf(s.out, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(s.out, "Body:\n%s\n", msg.TextBody)
	fmt.Fprintln(s.out, "======================")

	s.log.Info().
		Str("message_id", id).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("simulated email delivery")

	return id, nil
}
