package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hospitalpanel/models"

	"github.com/go-redis/redis/v8"
)

const attemptPrefix = "loginAttempt:"

// AttemptTTL bounds how long a login attempt (phone number, order identifier)
// stays valid before the operator must start over.
const AttemptTTL = 10 * time.Minute

// AttemptStore persists in-flight login attempts. Get returns (nil, nil) when
// no attempt exists under the given ID.
type AttemptStore interface {
	Get(ctx context.Context, attemptID string) (*models.LoginAttempt, error)
	Save(ctx context.Context, attemptID string, attempt models.LoginAttempt) error
	Delete(ctx context.Context, attemptID string) error
}

// RedisAttemptStore keeps attempts in the dedicated attempt cache with a TTL.
type RedisAttemptStore struct {
	Client *redis.Client
}

func (s *RedisAttemptStore) Get(ctx context.Context, attemptID string) (*models.LoginAttempt, error) {
	data, err := s.Client.Get(ctx, attemptPrefix+attemptID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get login attempt: %w", err)
	}
	var attempt models.LoginAttempt
	if err := json.Unmarshal([]byte(data), &attempt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal login attempt: %w", err)
	}
	return &attempt, nil
}

func (s *RedisAttemptStore) Save(ctx context.Context, attemptID string, attempt models.LoginAttempt) error {
	attempt.LastUpdatedAt = time.Now()
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal login attempt: %w", err)
	}
	if err := s.Client.Set(ctx, attemptPrefix+attemptID, data, AttemptTTL).Err(); err != nil {
		return fmt.Errorf("failed to save login attempt: %w", err)
	}
	return nil
}

func (s *RedisAttemptStore) Delete(ctx context.Context, attemptID string) error {
	return s.Client.Del(ctx, attemptPrefix+attemptID).Err()
}
