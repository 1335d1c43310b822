package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailgate/mailgate/internal/config"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"offline", ModeOffline, false},
		{"local", ModeOffline, false},
		{"", ModeOffline, false},
		{"smtp", ModeSMTP, false},
		{"ses", ModeSES, false},
		{"gmail", ModeGmail, false},
		{"carrier-pigeon", "", true},
		{"SMTP", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Offline(t *testing.T) {
	cfg := config.EmailConfig{Mode: "offline", SenderAddress: "x@y.z"}

	sender, err := New(context.Background(), cfg, nopLogger())
	require.NoError(t, err)
	assert.IsType(t, &OfflineSender{}, sender)
}

func TestNew_SMTPRequiresHost(t *testing.T) {
	cfg := config.EmailConfig{Mode: "smtp", SenderAddress: "x@y.z"}

	_, err := New(context.Background(), cfg, nopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp.host is required")
}

func TestNew_UnknownMode(t *testing.T) {
	cfg := config.EmailConfig{Mode: "telegraph"}

	_, err := New(context.Background(), cfg, nopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestNew_GmailRequiresCredentials(t *testing.T) {
	cfg := config.EmailConfig{Mode: "gmail", SenderAddress: "x@y.z"}

	_, err := New(context.Background(), cfg, nopLogger())
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFromHeader(t *testing.T) {
	assert.Equal(t, "x@y.z", fromHeader(config.EmailConfig{SenderAddress: "x@y.z"}))
	assert.Equal(t, "Me <x@y.z>", fromHeader(config.EmailConfig{SenderAddress: "x@y.z", SenderName: "Me"}))
}
