package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// SeedDiscountCodes is the storefront's standing promotional dataset.
func SeedDiscountCodes() []model.DiscountCode {
	farFuture := time.Date(2099, time.December, 31, 23, 59, 59, 0, time.UTC)
	return []model.DiscountCode{
		{
			ID:                 1,
			Code:               "WELCOME10",
			Description:        "10% off your first order",
			DiscountPercentage: decimal.NewFromInt(10),
			MinOrderAmount:     decimal.Zero,
			MaxDiscountAmount:  decimal.NewFromInt(50),
			ValidUntil:         farFuture,
			IsActive:           true,
		},
		{
			ID:                 2,
			Code:               "SUMMER20",
			Description:        "20% off orders over $50",
			DiscountPercentage: decimal.NewFromInt(20),
			MinOrderAmount:     decimal.NewFromInt(50),
			MaxDiscountAmount:  decimal.NewFromInt(100),
			ValidUntil:         farFuture,
			IsActive:           true,
		},
		{
			ID:                 3,
			Code:               "FREESHIP",
			Description:        "$15 off orders over $75",
			DiscountPercentage: decimal.NewFromInt(15),
			MinOrderAmount:     decimal.NewFromInt(75),
			MaxDiscountAmount:  decimal.NewFromInt(15),
			ValidUntil:         farFuture,
			IsActive:           true,
		},
		{
			ID:                 4,
			Code:               "SPRING15",
			Description:        "Spring sale, 15% off",
			DiscountPercentage: decimal.NewFromInt(15),
			MinOrderAmount:     decimal.NewFromInt(30),
			MaxDiscountAmount:  decimal.NewFromInt(40),
			ValidUntil:         time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC),
			IsActive:           true,
		},
		{
			ID:                 5,
			Code:               "VIP25",
			Description:        "25% off for VIP members",
			DiscountPercentage: decimal.NewFromInt(25),
			MinOrderAmount:     decimal.NewFromInt(100),
			MaxDiscountAmount:  decimal.NewFromInt(200),
			ValidUntil:         farFuture,
			IsActive:           false,
		},
	}
}

// StaticCatalog serves a fixed set of discount codes.
type StaticCatalog struct {
	codes []model.DiscountCode
	index map[string]int
}

// NewStaticCatalog constructs catalog over codes. Codes are stored in canonical form.
func NewStaticCatalog(codes []model.DiscountCode) *StaticCatalog {
	c := &StaticCatalog{
		codes: make([]model.DiscountCode, 0, len(codes)),
		index: make(map[string]int, len(codes)),
	}
	for _, code := range codes {
		code.Code = model.CanonicalCode(code.Code)
		if _, dup := c.index[code.Code]; dup {
			continue
		}
		c.index[code.Code] = len(c.codes)
		c.codes = append(c.codes, code)
	}
	return c
}

// NewSeedCatalog constructs catalog over SeedDiscountCodes.
func NewSeedCatalog() *StaticCatalog {
	return NewStaticCatalog(SeedDiscountCodes())
}

// FindByCode returns the code with exactly the given canonical form.
func (c *StaticCatalog) FindByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := c.index[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	found := c.codes[i]
	return &found, nil
}

// List returns every code in insertion order.
func (c *StaticCatalog) List(ctx context.Context) ([]model.DiscountCode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.DiscountCode(nil), c.codes...), nil
}
