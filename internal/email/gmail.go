package email

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mailgate/mailgate/internal/config"
)

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	service *gmail.Service
	fromHdr string
}

// NewGmailSender creates a new GmailSender. It expects either a service
// account credentials JSON with domain-wide delegation, or an OAuth2 client
// with a refresh token for the sender mailbox.
func NewGmailSender(ctx context.Context, cfg config.EmailConfig) (*GmailSender, error) {
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("gmail: sender address is required")
	}

	var client *gmail.Service
	var err error

	switch {
	case cfg.Gmail.CredentialsJSON != "":
		// Service account with domain-wide delegation, impersonating the sender
		jwtConfig, jerr := google.JWTConfigFromJSON([]byte(cfg.Gmail.CredentialsJSON), gmail.GmailSendScope)
		if jerr != nil {
			return nil, fmt.Errorf("gmail: failed to parse credentials: %w", jerr)
		}
		jwtConfig.Subject = cfg.SenderAddress
		client, err = gmail.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))

	case cfg.Gmail.ClientID != "" && cfg.Gmail.ClientSecret != "" && cfg.Gmail.RefreshToken != "":
		// OAuth2 client credentials + refresh token for a personal mailbox
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.Gmail.ClientID,
			ClientSecret: cfg.Gmail.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		}
		token := &oauth2.Token{RefreshToken: cfg.Gmail.RefreshToken}
		client, err = gmail.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))

	default:
		return nil, fmt.Errorf("gmail: %w", ErrMissingCredentials)
	}

	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service: client,
		fromHdr: fromHeader(cfg),
	}, nil
}

// Send sends the message via the Gmail API.
func (g *GmailSender) Send(ctx context.Context, msg Message) (string, error) {
	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(buildTextMessage(g.fromHdr, msg))),
	}

	sent, err := g.service.Users.Messages.Send("me", gmailMsg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail: failed to send email: %w", err)
	}

	return sent.Id, nil
}
