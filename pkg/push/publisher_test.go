package push

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) AddSubscription(ctx context.Context, userUUID, endpointARN string) (PushSubscription, error) {
	args := m.Called(ctx, userUUID, endpointARN)
	return args.Get(0).(PushSubscription), args.Error(1)
}

func (m *mockSubscriptionRepository) RemoveSubscription(ctx context.Context, id, userUUID string) error {
	args := m.Called(ctx, id, userUUID)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) ListByUser(ctx context.Context, userUUID string) ([]PushSubscription, error) {
	args := m.Called(ctx, userUUID)
	return args.Get(0).([]PushSubscription), args.Error(1)
}

type mockSNS struct {
	mock.Mock
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	return &sns.PublishOutput{}, args.Error(1)
}

func TestPublishToUser_FansOutToAllEndpoints(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	client := new(mockSNS)
	pub := NewPublisherWithClient(client, repo)

	repo.On("ListByUser", mock.Anything, "user1").Return([]PushSubscription{
		{ID: "s1", UserUUID: "user1", EndpointARN: "arn:aws:sns:1"},
		{ID: "s2", UserUUID: "user1", EndpointARN: "arn:aws:sns:2"},
	}, nil)

	payload := Payload{Type: "like", Message: "someone liked your listing", ListingID: "l1"}
	client.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		var got Payload
		if err := json.Unmarshal([]byte(*in.Message), &got); err != nil {
			return false
		}
		return got == payload
	})).Return(&sns.PublishOutput{}, nil).Twice()

	sent := pub.PublishToUser(context.Background(), "user1", payload)
	require.Equal(t, 2, sent)
	client.AssertExpectations(t)
}

func TestPublishToUser_ContinuesPastFailedEndpoint(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	client := new(mockSNS)
	pub := NewPublisherWithClient(client, repo)

	repo.On("ListByUser", mock.Anything, "user1").Return([]PushSubscription{
		{ID: "s1", UserUUID: "user1", EndpointARN: "arn:bad"},
		{ID: "s2", UserUUID: "user1", EndpointARN: "arn:good"},
	}, nil)

	client.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return *in.TargetArn == "arn:bad"
	})).Return(&sns.PublishOutput{}, errors.New("endpoint disabled"))
	client.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return *in.TargetArn == "arn:good"
	})).Return(&sns.PublishOutput{}, nil)

	sent := pub.PublishToUser(context.Background(), "user1", Payload{Type: "match"})
	require.Equal(t, 1, sent)
}

func TestPublishToUser_RepoErrorSendsNothing(t *testing.T) {
	repo := new(mockSubscriptionRepository)
	client := new(mockSNS)
	pub := NewPublisherWithClient(client, repo)

	repo.On("ListByUser", mock.Anything, "user1").Return([]PushSubscription{}, errors.New("db down"))

	sent := pub.PublishToUser(context.Background(), "user1", Payload{Type: "like"})
	require.Zero(t, sent)
	client.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
