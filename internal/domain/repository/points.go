package repository

import (
	"context"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// PointsRepository reads reward point accounts. Mutation belongs to the loyalty service.
type PointsRepository interface {
	GetAccount(ctx context.Context, userID int64) (*model.PointsAccount, error)
}
