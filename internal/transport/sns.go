// internal/transport/sns.go
package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSPublisher is implemented by internal/common/aws.SNSClient.
type SNSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// EndpointResolver maps a candidate to their SNS platform endpoint ARN.
type EndpointResolver interface {
	PushEndpoint(ctx context.Context, candidateID string) (string, error)
}

// SNSTransport publishes mission notifications to candidate device endpoints.
type SNSTransport struct {
	publisher SNSPublisher
	resolver  EndpointResolver
}

func NewSNSTransport(publisher SNSPublisher, resolver EndpointResolver) *SNSTransport {
	return &SNSTransport{publisher: publisher, resolver: resolver}
}

func (t *SNSTransport) Send(ctx context.Context, candidateID string, payload Payload) error {
	endpoint, err := t.resolver.PushEndpoint(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("resolve push endpoint: %w", err)
	}

	message, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = t.publisher.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(endpoint),
		Message:   aws.String(string(message)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"urgency": {
				DataType:    aws.String("String"),
				StringValue: aws.String(payload.Urgency),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
