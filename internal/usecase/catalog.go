package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/domain/repository"
	"github.com/polkiloo/storefront-checkout/internal/pricing"
)

// DiscountCatalog answers which promo codes are usable right now.
type DiscountCatalog struct {
	codes repository.DiscountCodeRepository
	calc  *pricing.Calculator
	now   func() time.Time
}

// NewDiscountCatalog constructs DiscountCatalog.
func NewDiscountCatalog(codes repository.DiscountCodeRepository, calc *pricing.Calculator) *DiscountCatalog {
	return &DiscountCatalog{codes: codes, calc: calc, now: time.Now}
}

// WithClock replaces the clock used for expiry checks.
func (c *DiscountCatalog) WithClock(now func() time.Time) *DiscountCatalog {
	if now != nil {
		c.now = now
	}
	return c
}

// Validate returns the usable code matching input. Unknown, inactive and
// expired codes all yield ErrInvalidPromoCode.
func (c *DiscountCatalog) Validate(ctx context.Context, code string) (*model.DiscountCode, error) {
	canonical := model.CanonicalCode(code)
	if canonical == "" {
		return nil, domainErrors.ErrInvalidPromoCode
	}

	found, err := c.codes.FindByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidPromoCode
		}
		return nil, fmt.Errorf("lookup promo code: %w", err)
	}
	if !found.UsableAt(c.now()) {
		return nil, domainErrors.ErrInvalidPromoCode
	}
	return found, nil
}

// List returns usable codes in catalog order.
func (c *DiscountCatalog) List(ctx context.Context) ([]model.DiscountCode, error) {
	all, err := c.codes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	now := c.now()
	result := make([]model.DiscountCode, 0, len(all))
	for _, code := range all {
		if code.UsableAt(now) {
			result = append(result, code)
		}
	}
	return result, nil
}

// Check validates code against subtotal the way the coupon service would.
// Only lookup failures are returned as errors.
func (c *DiscountCatalog) Check(ctx context.Context, code string, subtotal decimal.Decimal) (model.CouponCheck, error) {
	check := model.CouponCheck{Code: model.CanonicalCode(code), DiscountAmount: decimal.Zero}

	found, err := c.Validate(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidPromoCode) {
			check.Reason = err.Error()
			return check, nil
		}
		return check, err
	}

	check.Description = found.Description
	applied := c.calc.ApplyDiscountCode(*found, subtotal)
	if !applied.Applied {
		check.Reason = domainErrors.ErrMinOrderNotMet.Error()
		return check, nil
	}
	check.Valid = true
	check.DiscountAmount = applied.DiscountAmount
	return check, nil
}
