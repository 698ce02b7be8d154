package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func summer20() model.DiscountCode {
	return model.DiscountCode{
		ID:                 2,
		Code:               "SUMMER20",
		DiscountPercentage: dec("20"),
		MinOrderAmount:     dec("50"),
		MaxDiscountAmount:  dec("100"),
		ValidUntil:         time.Now().Add(24 * time.Hour),
		IsActive:           true,
	}
}

func TestDiscountForPoints(t *testing.T) {
	ledger := NewPointsLedger(DefaultPolicy())

	cases := []struct {
		name      string
		use       bool
		points    int64
		subtotal  string
		expectVal string
	}{
		{name: "disabled", use: false, points: 500, subtotal: "100", expectVal: "0"},
		{name: "below cap", use: true, points: 500, subtotal: "100", expectVal: "5"},
		{name: "capped at thirty percent", use: true, points: 10000, subtotal: "100", expectVal: "30"},
		{name: "no points", use: true, points: 0, subtotal: "100", expectVal: "0"},
		{name: "zero subtotal", use: true, points: 500, subtotal: "0", expectVal: "0"},
		{name: "negative subtotal treated as zero", use: true, points: 500, subtotal: "-10", expectVal: "0"},
		{name: "fractional cap truncated", use: true, points: 1000, subtotal: "0.05", expectVal: "0.01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.DiscountForPoints(tc.use, tc.points, dec(tc.subtotal))
			if !got.Equal(dec(tc.expectVal)) {
				t.Fatalf("expected %s, got %s", tc.expectVal, got)
			}
		})
	}
}

func TestDiscountForPointsBounds(t *testing.T) {
	ledger := NewPointsLedger(DefaultPolicy())
	subtotals := []string{"0", "0.01", "0.33", "1", "9.99", "33.33", "100", "1234.56"}
	points := []int64{0, 1, 7, 99, 500, 3333, 100000}

	for _, s := range subtotals {
		for _, p := range points {
			subtotal := dec(s)
			got := ledger.DiscountForPoints(true, p, subtotal)
			if got.GreaterThan(subtotal.Mul(dec("0.30"))) {
				t.Fatalf("subtotal=%s points=%d: discount %s exceeds subtotal cap", s, p, got)
			}
			if got.GreaterThan(decimal.NewFromInt(p).Mul(dec("0.01"))) {
				t.Fatalf("subtotal=%s points=%d: discount %s exceeds point value", s, p, got)
			}
		}
	}
}

func TestMaxRedeemablePoints(t *testing.T) {
	ledger := NewPointsLedger(DefaultPolicy())

	if got := ledger.MaxRedeemablePoints(500, dec("100")); got != 500 {
		t.Fatalf("expected all 500 points redeemable, got %d", got)
	}
	if got := ledger.MaxRedeemablePoints(10000, dec("100")); got != 5000 {
		t.Fatalf("expected 50%% cap of 5000 points, got %d", got)
	}
	if got := ledger.MaxRedeemablePoints(10000, dec("0.03")); got != 1 {
		t.Fatalf("expected floor to 1 point, got %d", got)
	}
	if got := ledger.MaxRedeemablePoints(0, dec("100")); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := ledger.MaxRedeemablePoints(100, dec("-5")); got != 0 {
		t.Fatalf("expected 0 for negative total, got %d", got)
	}

	zeroValue := NewPointsLedger(Policy{PointValue: decimal.Zero, OrderTotalCap: dec("0.5")})
	if got := zeroValue.MaxRedeemablePoints(100, dec("100")); got != 0 {
		t.Fatalf("expected 0 when points are worthless, got %d", got)
	}
}

func TestPointsEarnedAndRedeemed(t *testing.T) {
	ledger := NewPointsLedger(DefaultPolicy())

	if got := ledger.PointsEarned(dec("100")); got != 1000 {
		t.Fatalf("expected 1000 points, got %d", got)
	}
	if got := ledger.PointsEarned(dec("12.349")); got != 123 {
		t.Fatalf("expected floor to 123 points, got %d", got)
	}
	if got := ledger.PointsEarned(dec("-1")); got != 0 {
		t.Fatalf("expected 0 points, got %d", got)
	}

	if got := ledger.PointsRedeemed(dec("5")); got != 500 {
		t.Fatalf("expected 500 points redeemed, got %d", got)
	}
	if got := ledger.PointsRedeemed(decimal.Zero); got != 0 {
		t.Fatalf("expected 0 points redeemed, got %d", got)
	}

	summary := ledger.Summary(model.PointsAccount{UserID: 1, AvailablePoints: 10000}, dec("100"))
	if summary.Available != 10000 || !summary.Value.Equal(dec("100")) || summary.MaxRedeemable != 5000 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestApplyDiscountCode(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), nil)
	code := summer20()

	got := calc.ApplyDiscountCode(code, dec("200"))
	if !got.Applied || !got.DiscountAmount.Equal(dec("40")) || !got.DiscountedTotal.Equal(dec("160")) {
		t.Fatalf("unexpected application %+v", got)
	}

	got = calc.ApplyDiscountCode(code, dec("30"))
	if got.Applied || !got.DiscountAmount.IsZero() || !got.DiscountedTotal.Equal(dec("30")) {
		t.Fatalf("expected no discount below minimum, got %+v", got)
	}

	got = calc.ApplyDiscountCode(code, dec("1000"))
	if !got.DiscountAmount.Equal(dec("100")) {
		t.Fatalf("expected cap of 100, got %s", got.DiscountAmount)
	}

	got = calc.ApplyDiscountCode(code, dec("50"))
	if !got.Applied || !got.DiscountAmount.Equal(dec("10")) {
		t.Fatalf("expected minimum to be inclusive, got %+v", got)
	}
}

func TestApplyDiscountCodeBounds(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), nil)
	codes := []model.DiscountCode{
		summer20(),
		{Code: "WELCOME10", DiscountPercentage: dec("10"), MinOrderAmount: decimal.Zero, MaxDiscountAmount: dec("25")},
		{Code: "ODD", DiscountPercentage: dec("33.3"), MinOrderAmount: dec("1"), MaxDiscountAmount: dec("7.77")},
	}
	subtotals := []string{"0", "0.05", "1", "19.99", "50", "77.77", "250", "5000"}

	for _, code := range codes {
		for _, s := range subtotals {
			subtotal := dec(s)
			got := calc.ApplyDiscountCode(code, subtotal)
			if subtotal.LessThan(code.MinOrderAmount) {
				if !got.DiscountAmount.IsZero() {
					t.Fatalf("%s@%s: expected zero discount below minimum, got %s", code.Code, s, got.DiscountAmount)
				}
				continue
			}
			if got.DiscountAmount.GreaterThan(code.MaxDiscountAmount) {
				t.Fatalf("%s@%s: discount %s exceeds cap", code.Code, s, got.DiscountAmount)
			}
			if got.DiscountAmount.GreaterThan(subtotal.Mul(code.DiscountPercentage).Div(decimal.NewFromInt(100))) {
				t.Fatalf("%s@%s: discount %s exceeds percentage", code.Code, s, got.DiscountAmount)
			}
		}
	}
}

func TestTotalClampsNegative(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), nil)

	total, clamped := calc.Total(dec("100"), dec("10"), decimal.Zero, decimal.Zero, decimal.Zero)
	if clamped || !total.Equal(dec("110")) {
		t.Fatalf("expected 110 unclamped, got %s clamped=%v", total, clamped)
	}

	total, clamped = calc.Total(dec("10"), decimal.Zero, dec("3"), dec("25"), decimal.Zero)
	if !clamped || !total.IsZero() {
		t.Fatalf("expected clamp to zero, got %s clamped=%v", total, clamped)
	}
}

func TestPriceScenarios(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), nil)
	promo := summer20()

	cases := []struct {
		name   string
		in     PricingInput
		expect model.PricingResult
	}{
		{
			name: "shipping only",
			in:   PricingInput{Subtotal: dec("100"), Shipping: dec("10")},
			expect: model.PricingResult{
				Subtotal: dec("100"), Shipping: dec("10"), Total: dec("110"),
			},
		},
		{
			name: "reward points",
			in:   PricingInput{Subtotal: dec("100"), UseRewardPoints: true, AvailablePoints: 500},
			expect: model.PricingResult{
				Subtotal: dec("100"), PointsDiscount: dec("5"), Total: dec("95"),
			},
		},
		{
			name: "promo code",
			in:   PricingInput{Subtotal: dec("200"), Promo: &promo},
			expect: model.PricingResult{
				Subtotal: dec("200"), PromoDiscount: dec("40"), Total: dec("160"),
			},
		},
		{
			name: "promo below minimum",
			in:   PricingInput{Subtotal: dec("30"), Shipping: dec("4.99"), Promo: &promo},
			expect: model.PricingResult{
				Subtotal: dec("30"), Shipping: dec("4.99"), Total: dec("34.99"),
			},
		},
		{
			name: "gift wrap",
			in:   PricingInput{Subtotal: dec("1"), GiftWrap: true},
			expect: model.PricingResult{
				Subtotal: dec("1"), AdditionalFees: dec("5"), Total: dec("6"),
			},
		},
		{
			name: "points and promo both against original subtotal",
			in:   PricingInput{Subtotal: dec("200"), UseRewardPoints: true, AvailablePoints: 100000, Promo: &promo},
			expect: model.PricingResult{
				Subtotal: dec("200"), PointsDiscount: dec("60"), PromoDiscount: dec("40"), Total: dec("100"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Price(tc.in)
			assertPricing(t, tc.expect, got)
		})
	}
}

func TestPriceClampsWhenDiscountsExceedOrder(t *testing.T) {
	greedy := model.DiscountCode{Code: "ALL", DiscountPercentage: dec("100"), MaxDiscountAmount: dec("1000")}
	calc := NewCalculator(DefaultPolicy(), nil)

	got := calc.Price(PricingInput{Subtotal: dec("10"), UseRewardPoints: true, AvailablePoints: 1000, Promo: &greedy})
	if !got.Clamped || !got.Total.IsZero() {
		t.Fatalf("expected clamped zero total, got %+v", got)
	}
	if !got.PointsDiscount.Equal(dec("3")) || !got.PromoDiscount.Equal(dec("10")) {
		t.Fatalf("expected discounts to be reported unclamped, got %+v", got)
	}
}

func TestGiftWrapFeeIndependentOfSubtotal(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), nil)
	for _, s := range []string{"0", "1", "99.99", "10000"} {
		got := calc.Price(PricingInput{Subtotal: dec(s), GiftWrap: true})
		if !got.AdditionalFees.Equal(dec("5")) {
			t.Fatalf("subtotal %s: expected 5.00 fee, got %s", s, got.AdditionalFees)
		}
	}
}

func assertPricing(t *testing.T, expect, got model.PricingResult) {
	t.Helper()
	pairs := []struct {
		name string
		want decimal.Decimal
		have decimal.Decimal
	}{
		{"subtotal", expect.Subtotal, got.Subtotal},
		{"shipping", expect.Shipping, got.Shipping},
		{"points", expect.PointsDiscount, got.PointsDiscount},
		{"promo", expect.PromoDiscount, got.PromoDiscount},
		{"fees", expect.AdditionalFees, got.AdditionalFees},
		{"total", expect.Total, got.Total},
	}
	for _, p := range pairs {
		if !p.want.Equal(p.have) {
			t.Fatalf("%s: expected %s, got %s", p.name, p.want, p.have)
		}
	}
	if expect.Clamped != got.Clamped {
		t.Fatalf("clamped: expected %v, got %v", expect.Clamped, got.Clamped)
	}
}
