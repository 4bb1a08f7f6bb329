package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSService is the slice of the SNS client the publisher needs, defined as
// an interface for mocking.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Payload is the message body pushed to every endpoint of a recipient.
type Payload struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	ListingID string `json:"listing_id,omitempty"`
}

// Publisher fans a payload out to all registered endpoints of a user.
type Publisher struct {
	repo   SubscriptionRepository
	client SNSService
	logger *log.Logger
}

func NewPublisher(ctx context.Context, region string, repo SubscriptionRepository) (*Publisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Publisher{
		repo:   repo,
		client: sns.NewFromConfig(awsCfg),
		logger: log.New(log.Writer(), "[push] ", log.LstdFlags),
	}, nil
}

// NewPublisherWithClient wires a pre-built SNS client, used by tests.
func NewPublisherWithClient(client SNSService, repo SubscriptionRepository) *Publisher {
	return &Publisher{
		repo:   repo,
		client: client,
		logger: log.New(log.Writer(), "[push] ", log.LstdFlags),
	}
}

// PublishToUser sends the payload to every subscription of the user.
// Failures are logged per endpoint and never abort the rest of the fan-out;
// the returned count is how many publishes succeeded.
func (p *Publisher) PublishToUser(ctx context.Context, userUUID string, payload Payload) int {
	subs, err := p.repo.ListByUser(ctx, userUUID)
	if err != nil {
		p.logger.Printf("subscription lookup failed for %s: %v", userUUID, err)
		return 0
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Printf("marshal payload failed: %v", err)
		return 0
	}

	sent := 0
	for _, sub := range subs {
		_, err := p.client.Publish(ctx, &sns.PublishInput{
			TargetArn: aws.String(sub.EndpointARN),
			Message:   aws.String(string(body)),
		})
		if err != nil {
			p.logger.Printf("publish to %s failed: %v", sub.EndpointARN, err)
			continue
		}
		sent++
	}
	return sent
}
