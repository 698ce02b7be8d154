package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// PointsLedger values reward points against an order. It never mutates balances.
type PointsLedger struct {
	policy Policy
}

// NewPointsLedger constructs PointsLedger for policy.
func NewPointsLedger(policy Policy) *PointsLedger {
	return &PointsLedger{policy: policy}
}

// Value returns the monetary value of points.
func (l *PointsLedger) Value(points int64) decimal.Decimal {
	if points <= 0 {
		return decimal.Zero
	}
	return model.TruncateMoney(decimal.NewFromInt(points).Mul(l.policy.PointValue))
}

// DiscountForPoints returns the points discount, capped at SubtotalCap of subtotal.
func (l *PointsLedger) DiscountForPoints(usePoints bool, availablePoints int64, subtotal decimal.Decimal) decimal.Decimal {
	if !usePoints {
		return decimal.Zero
	}
	value := l.Value(availablePoints)
	limit := model.TruncateMoney(model.NonNegative(subtotal).Mul(l.policy.SubtotalCap))
	return decimal.Min(value, limit)
}

// MaxRedeemablePoints returns how many points may be redeemed against orderTotal
// under OrderTotalCap.
func (l *PointsLedger) MaxRedeemablePoints(availablePoints int64, orderTotal decimal.Decimal) int64 {
	if availablePoints <= 0 || !l.policy.PointValue.IsPositive() {
		return 0
	}
	limitValue := model.NonNegative(orderTotal).Mul(l.policy.OrderTotalCap)
	limitPoints := limitValue.Div(l.policy.PointValue).Floor().IntPart()
	if limitPoints < availablePoints {
		return limitPoints
	}
	return availablePoints
}

// PointsEarned returns points credited for an order with the given subtotal.
func (l *PointsLedger) PointsEarned(subtotal decimal.Decimal) int64 {
	return model.NonNegative(subtotal).Mul(l.policy.PointsPerUnit).Floor().IntPart()
}

// PointsRedeemed converts a points discount back to the number of points it consumes.
func (l *PointsLedger) PointsRedeemed(discount decimal.Decimal) int64 {
	if !discount.IsPositive() || !l.policy.PointValue.IsPositive() {
		return 0
	}
	return discount.Div(l.policy.PointValue).Ceil().IntPart()
}

// Summary builds the UI hint for an account.
func (l *PointsLedger) Summary(account model.PointsAccount, orderTotal decimal.Decimal) model.PointsSummary {
	return model.PointsSummary{
		Available:     account.AvailablePoints,
		Value:         l.Value(account.AvailablePoints),
		MaxRedeemable: l.MaxRedeemablePoints(account.AvailablePoints, orderTotal),
	}
}
