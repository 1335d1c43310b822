package email

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSESInput(t *testing.T) {
	input := buildSESInput("MailGate <noreply@mailgate.test>", Message{
		To:       "a@b.com",
		Subject:  "Hi",
		TextBody: "Test",
	})

	assert.Equal(t, "MailGate <noreply@mailgate.test>", aws.ToString(input.FromEmailAddress))

	require.NotNil(t, input.Destination)
	assert.Equal(t, []string{"a@b.com"}, input.Destination.ToAddresses)

	require.NotNil(t, input.Content)
	require.NotNil(t, input.Content.Simple)
	assert.Equal(t, "Hi", aws.ToString(input.Content.Simple.Subject.Data))
	assert.Equal(t, "UTF-8", aws.ToString(input.Content.Simple.Subject.Charset))
	assert.Equal(t, "Test", aws.ToString(input.Content.Simple.Body.Text.Data))
}
