package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/mailgate/mailgate/internal/config"
)

// SESSender implements Sender using the AWS SES v2 API.
type SESSender struct {
	client  *sesv2.Client
	creds   aws.CredentialsProvider
	fromHdr string
}

// NewSESSender creates a new SESSender. Static credentials from the config
// take precedence; otherwise the default AWS credential chain is used.
// Credential resolution is deferred to Send so a missing-credentials problem
// is reported per request as a configuration error.
func NewSESSender(ctx context.Context, cfg config.EmailConfig) (*SESSender, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SES.Region),
	}
	if cfg.SES.AccessKeyID != "" && cfg.SES.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: failed to load AWS config: %w", err)
	}

	return &SESSender{
		client:  sesv2.NewFromConfig(awsCfg),
		creds:   awsCfg.Credentials,
		fromHdr: fromHeader(cfg),
	}, nil
}

// Send sends the message via the SES API.
func (s *SESSender) Send(ctx context.Context, msg Message) (string, error) {
	if _, err := s.creds.Retrieve(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}

	out, err := s.client.SendEmail(ctx, buildSESInput(s.fromHdr, msg))
	if err != nil {
		return "", fmt.Errorf("ses: failed to send email: %w", err)
	}

	return aws.ToString(out.MessageId), nil
}

// buildSESInput maps a Message onto the SES v2 SendEmail request shape.
func buildSESInput(from string, msg Message) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(msg.TextBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}
}
