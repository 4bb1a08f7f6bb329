package likes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LikeStateStore keeps per-client like flags in redis. It backs the
// pre-signup experience: a visitor without an account can toggle likes and
// see them survive reloads, keyed by the client id their browser holds.
type LikeStateStore interface {
	SetLiked(ctx context.Context, clientID, listingID string, liked bool) error
	IsLiked(ctx context.Context, clientID, listingID string) (bool, error)
}

type redisLikeStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLikeStateStore wraps a redis client. Entries expire after ttl so
// abandoned anonymous sessions do not accumulate forever; ttl <= 0 keeps
// them indefinitely.
func NewRedisLikeStateStore(client *redis.Client, ttl time.Duration) LikeStateStore {
	return &redisLikeStateStore{client: client, ttl: ttl}
}

func likeStateKey(clientID, listingID string) string {
	return fmt.Sprintf("like:%s:%s", listingID, clientID)
}

func (s *redisLikeStateStore) SetLiked(ctx context.Context, clientID, listingID string, liked bool) error {
	key := likeStateKey(clientID, listingID)
	if !liked {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("delete like state: %w", err)
		}
		return nil
	}
	if err := s.client.Set(ctx, key, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("set like state: %w", err)
	}
	return nil
}

func (s *redisLikeStateStore) IsLiked(ctx context.Context, clientID, listingID string) (bool, error) {
	err := s.client.Get(ctx, likeStateKey(clientID, listingID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get like state: %w", err)
	}
	return true, nil
}
