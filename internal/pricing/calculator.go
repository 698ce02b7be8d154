package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// DiscountApplication is the outcome of applying a promo code to a subtotal.
type DiscountApplication struct {
	DiscountAmount  decimal.Decimal
	DiscountedTotal decimal.Decimal
	Applied         bool
}

// PricingInput is everything a full recomputation reads.
type PricingInput struct {
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	UseRewardPoints bool
	AvailablePoints int64
	Promo           *model.DiscountCode
	GiftWrap        bool
}

// Calculator combines subtotal, shipping, fees and discounts into totals.
// All methods are total functions over non-negative inputs.
type Calculator struct {
	policy Policy
	points *PointsLedger
}

// NewCalculator constructs Calculator for policy.
func NewCalculator(policy Policy, points *PointsLedger) *Calculator {
	if points == nil {
		points = NewPointsLedger(policy)
	}
	return &Calculator{policy: policy, points: points}
}

// Points exposes the ledger used by the calculator.
func (c *Calculator) Points() *PointsLedger {
	return c.points
}

// ApplyDiscountCode computes the promo discount for subtotal. Subtotals under the
// code minimum get no discount.
func (c *Calculator) ApplyDiscountCode(code model.DiscountCode, subtotal decimal.Decimal) DiscountApplication {
	subtotal = model.NonNegative(subtotal)
	if subtotal.LessThan(code.MinOrderAmount) {
		return DiscountApplication{DiscountAmount: decimal.Zero, DiscountedTotal: subtotal}
	}

	amount := model.TruncateMoney(subtotal.Mul(model.NonNegative(code.DiscountPercentage)).Div(hundred))
	if limit := model.NonNegative(code.MaxDiscountAmount); amount.GreaterThan(limit) {
		amount = limit
	}
	return DiscountApplication{
		DiscountAmount:  amount,
		DiscountedTotal: subtotal.Sub(amount),
		Applied:         true,
	}
}

// AdditionalFees returns surcharges added before the final total.
func (c *Calculator) AdditionalFees(giftWrap bool) decimal.Decimal {
	if giftWrap {
		return c.policy.GiftWrapFee
	}
	return decimal.Zero
}

// Total sums the order and clamps negative results to zero. The second return
// value reports whether clamping happened.
func (c *Calculator) Total(subtotal, shipping, pointsDiscount, promoDiscount, additionalFees decimal.Decimal) (decimal.Decimal, bool) {
	total := subtotal.Add(shipping).Add(additionalFees).Sub(pointsDiscount).Sub(promoDiscount)
	total = model.RoundMoney(total)
	if total.IsNegative() {
		return decimal.Zero, true
	}
	return total, false
}

// Price recomputes the whole pricing result. Points and promo discounts are both
// taken against the original subtotal, never stacked.
func (c *Calculator) Price(in PricingInput) model.PricingResult {
	subtotal := model.RoundMoney(model.NonNegative(in.Subtotal))
	shipping := model.RoundMoney(model.NonNegative(in.Shipping))
	pointsDiscount := c.points.DiscountForPoints(in.UseRewardPoints, in.AvailablePoints, subtotal)

	promoDiscount := decimal.Zero
	if in.Promo != nil {
		promoDiscount = c.ApplyDiscountCode(*in.Promo, subtotal).DiscountAmount
	}

	fees := c.AdditionalFees(in.GiftWrap)
	total, clamped := c.Total(subtotal, shipping, pointsDiscount, promoDiscount, fees)

	return model.PricingResult{
		Subtotal:       subtotal,
		Shipping:       shipping,
		PointsDiscount: pointsDiscount,
		PromoDiscount:  promoDiscount,
		AdditionalFees: fees,
		Total:          total,
		Clamped:        clamped,
	}
}
