package repository

import (
	"context"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// DiscountCodeRepository is a read-only source of promotional codes.
type DiscountCodeRepository interface {
	// FindByCode matches the canonical code exactly, regardless of activity or expiry.
	FindByCode(ctx context.Context, code string) (*model.DiscountCode, error)
	// List returns every code in insertion order.
	List(ctx context.Context) ([]model.DiscountCode, error)
}
