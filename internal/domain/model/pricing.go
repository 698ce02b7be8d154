package model

import "github.com/shopspring/decimal"

// PricingResult is derived from a draft on every change and never stored on its own.
type PricingResult struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Shipping       decimal.Decimal `json:"shipping"`
	PointsDiscount decimal.Decimal `json:"pointsDiscount"`
	PromoDiscount  decimal.Decimal `json:"promoDiscount"`
	AdditionalFees decimal.Decimal `json:"additionalFees"`
	Total          decimal.Decimal `json:"total"`
	// Clamped is set when discounts drove the raw total below zero.
	Clamped bool `json:"clamped"`
}

// DiscountTotal is the combined points and promo discount.
func (p PricingResult) DiscountTotal() decimal.Decimal {
	return p.PointsDiscount.Add(p.PromoDiscount)
}
