package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountCode describes promotional code terms. Codes are immutable once issued.
type DiscountCode struct {
	ID                 int64           `json:"id"`
	Code               string          `json:"code"`
	Description        string          `json:"description"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	MinOrderAmount     decimal.Decimal `json:"minOrderAmount"`
	MaxDiscountAmount  decimal.Decimal `json:"maxDiscountAmount"`
	ValidUntil         time.Time       `json:"validUntil"`
	IsActive           bool            `json:"isActive"`
}

// UsableAt reports whether the code is active and not expired at the given instant.
func (c DiscountCode) UsableAt(now time.Time) bool {
	return c.IsActive && c.ValidUntil.After(now)
}

// CanonicalCode converts user input into the stored uppercase form.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CouponCheck is the answer of the coupon validation boundary.
type CouponCheck struct {
	Valid          bool
	Code           string
	DiscountAmount decimal.Decimal
	Description    string
	Reason         string
}
