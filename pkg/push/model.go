package push

import "time"

// PushSubscription is one registered delivery target for a user, stored as
// an SNS endpoint ARN.
type PushSubscription struct {
	ID          string    `json:"id"`
	UserUUID    string    `json:"user_uuid"`
	EndpointARN string    `json:"endpoint_arn"`
	CreatedAt   time.Time `json:"created_at"`
}
