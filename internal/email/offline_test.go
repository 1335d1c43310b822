package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/logger"
)

func nopLogger() *logger.Logger {
	return &logger.Logger{Logger: zerolog.Nop()}
}

func TestOfflineSender_Send(t *testing.T) {
	var sink bytes.Buffer
	cfg := config.EmailConfig{
		SenderAddress: "noreply@mailgate.test",
		SenderName:    "MailGate",
	}
	sender := NewOfflineSender(cfg, nopLogger(), &sink)

	id, err := sender.Send(context.Background(), Message{
		To:       "a@b.com",
		Subject:  "Hi",
		TextBody: "Test",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	out := sink.String()
	assert.Contains(t, out, "=== Simulated Email ===")
	assert.Contains(t, out, "From: MailGate <noreply@mailgate.test>")
	assert.Contains(t, out, "To: a@b.com")
	assert.Contains(t, out, "Subject: Hi")
	assert.Contains(t, out, "Test")
}

func TestOfflineSender_NeverFails(t *testing.T) {
	sender := NewOfflineSender(config.EmailConfig{SenderAddress: "x@y.z"}, nopLogger(), &bytes.Buffer{})

	for range 3 {
		_, err := sender.Send(context.Background(), Message{To: "a@b.com", Subject: "s", TextBody: "b"})
		require.NoError(t, err)
	}
}
