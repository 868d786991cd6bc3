package store

import (
	"fmt"
	"time"

	"github.com/RonjuVai/Osint-Bot/types"
)

// RedisSessionStore keeps the per-user awaiting-input mode. The TTL
// doubles as the stale-mode reset: an armed mode that is never answered
// simply expires.
type RedisSessionStore struct {
	client *RedisClient
	ttl    time.Duration
}

func NewRedisSessionStore(redisClient *RedisClient, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &RedisSessionStore{
		client: redisClient,
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) GetAwaitState(userID int64) (types.AwaitState, error) {
	key := s.client.generateKey("await", fmt.Sprintf("%d", userID))
	var state types.AwaitState
	if err := s.client.Get(key, &state); err != nil {
		return types.AwaitIdle, nil
	}
	if state == "" {
		return types.AwaitIdle, nil
	}
	return state, nil
}

func (s *RedisSessionStore) SetAwaitState(userID int64, state types.AwaitState) error {
	key := s.client.generateKey("await", fmt.Sprintf("%d", userID))
	if state == types.AwaitIdle {
		return s.client.Del(key)
	}
	return s.client.Set(key, state, s.ttl)
}

func (s *RedisSessionStore) ClearAwaitState(userID int64) error {
	key := s.client.generateKey("await", fmt.Sprintf("%d", userID))
	return s.client.Del(key)
}
