package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// DraftRepository keeps checkout sessions between requests.
type DraftRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.OrderDraft, error)
	Save(ctx context.Context, draft *model.OrderDraft, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}
