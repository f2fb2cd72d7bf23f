// internal/transport/ses.go
package transport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESSender is implemented by internal/common/aws.SESClient.
type SESSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// EmailResolver maps a candidate to their email address.
type EmailResolver interface {
	Email(ctx context.Context, candidateID string) (string, error)
}

// SESTransport delivers mission notifications by email, for candidates
// without a registered device.
type SESTransport struct {
	sender    SESSender
	resolver  EmailResolver
	fromEmail string
}

func NewSESTransport(sender SESSender, resolver EmailResolver, fromEmail string) *SESTransport {
	return &SESTransport{sender: sender, resolver: resolver, fromEmail: fromEmail}
}

func (t *SESTransport) Send(ctx context.Context, candidateID string, payload Payload) error {
	to, err := t.resolver.Email(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("resolve email: %w", err)
	}

	subject := fmt.Sprintf("New mission offer (%s urgency)", payload.Urgency)
	body := fmt.Sprintf(
		"A mission matching your profile is available %.1f km from you (compatibility %d/100). Open the app to respond.",
		payload.DistanceKm, payload.Score,
	)

	_, err = t.sender.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Source:      aws.String(t.fromEmail),
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
