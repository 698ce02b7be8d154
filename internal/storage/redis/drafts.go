package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

const draftKeyPrefix = "checkout:draft:"

// DraftStore keeps checkout drafts as JSON documents with a key TTL.
type DraftStore struct {
	client goredis.Cmdable
}

// NewDraftStore constructs DraftStore over client.
func NewDraftStore(client goredis.Cmdable) *DraftStore {
	return &DraftStore{client: client}
}

func draftKey(id uuid.UUID) string {
	return draftKeyPrefix + id.String()
}

func (s *DraftStore) Get(ctx context.Context, id uuid.UUID) (*model.OrderDraft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var draft model.OrderDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

// Save overwrites the draft and resets its TTL. A non-positive ttl keeps it until deleted.
func (s *DraftStore) Save(ctx context.Context, draft *model.OrderDraft, ttl time.Duration) error {
	if draft == nil {
		return domainErrors.ErrNotFound
	}
	if ttl < 0 {
		ttl = 0
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
