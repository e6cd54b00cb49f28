package bill

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hospitalpanel/models"

	"github.com/go-redis/redis/v8"
)

const draftPrefix = "billDraft:"

// DraftTTL bounds how long an abandoned draft lingers before the store drops it.
const DraftTTL = 24 * time.Hour

// DraftStore persists in-progress bills between requests. Get returns
// (nil, nil) when no draft exists under the given ID.
type DraftStore interface {
	Get(ctx context.Context, draftID string) (*models.BillDraft, error)
	Save(ctx context.Context, draft models.BillDraft) error
	Delete(ctx context.Context, draftID string) error
}

// RedisDraftStore keeps drafts in the dedicated draft cache with a TTL.
type RedisDraftStore struct {
	Client *redis.Client
}

func (s *RedisDraftStore) Get(ctx context.Context, draftID string) (*models.BillDraft, error) {
	data, err := s.Client.Get(ctx, draftPrefix+draftID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill draft: %w", err)
	}
	var draft models.BillDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bill draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, draft models.BillDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal bill draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftPrefix+draft.ID, data, DraftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save bill draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, draftID string) error {
	return s.Client.Del(ctx, draftPrefix+draftID).Err()
}
