// Package pricing holds the pure checkout arithmetic: reward point valuation,
// promo code discounts and order totals.
package pricing

import "github.com/shopspring/decimal"

// Policy carries the tunable pricing constants.
//
// SubtotalCap and OrderTotalCap both bound how much of an order points may
// cover. They are applied by different operations and are not reconciled.
type Policy struct {
	// PointValue is the monetary value of one reward point.
	PointValue decimal.Decimal
	// SubtotalCap is the share of the subtotal points may discount at checkout.
	SubtotalCap decimal.Decimal
	// OrderTotalCap is the share of the order total used for redemption hints.
	OrderTotalCap decimal.Decimal
	// PointsPerUnit is how many points one currency unit of subtotal earns.
	PointsPerUnit decimal.Decimal
	// GiftWrapFee is the flat surcharge for gift wrapping.
	GiftWrapFee decimal.Decimal
}

var (
	DefaultPointValue    = decimal.RequireFromString("0.01")
	DefaultSubtotalCap   = decimal.RequireFromString("0.30")
	DefaultOrderTotalCap = decimal.RequireFromString("0.50")
	DefaultPointsPerUnit = decimal.NewFromInt(10)
	DefaultGiftWrapFee   = decimal.RequireFromString("5.00")
)

// DefaultPolicy returns the storefront's standing pricing rules.
func DefaultPolicy() Policy {
	return Policy{
		PointValue:    DefaultPointValue,
		SubtotalCap:   DefaultSubtotalCap,
		OrderTotalCap: DefaultOrderTotalCap,
		PointsPerUnit: DefaultPointsPerUnit,
		GiftWrapFee:   DefaultGiftWrapFee,
	}
}
