package test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// PointsFacadeStub returns configured points summaries.
type PointsFacadeStub struct {
	SummaryFn func(context.Context, int64, decimal.Decimal) (model.PointsSummary, error)
}

// PointsSummary delegates to SummaryFn or reports 120 points worth 1.20.
func (s PointsFacadeStub) PointsSummary(ctx context.Context, userID int64, orderTotal decimal.Decimal) (model.PointsSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID, orderTotal)
	}
	return model.PointsSummary{Available: 120, Value: decimal.RequireFromString("1.2"), MaxRedeemable: 120}, nil
}

// PromotionFacadeStub simulates the promo code catalog.
type PromotionFacadeStub struct {
	ListFn  func(context.Context) ([]model.DiscountCode, error)
	CheckFn func(context.Context, string, decimal.Decimal) (model.CouponCheck, error)
}

// Promotions delegates to ListFn or returns a single code.
func (s PromotionFacadeStub) Promotions(ctx context.Context) ([]model.DiscountCode, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.DiscountCode{{
		Code:               "SUMMER20",
		Description:        "20% off",
		DiscountPercentage: decimal.NewFromInt(20),
		MinOrderAmount:     decimal.NewFromInt(50),
		MaxDiscountAmount:  decimal.NewFromInt(40),
		ValidUntil:         time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:           true,
	}}, nil
}

// CheckPromotion delegates to CheckFn or reports the code as invalid.
func (s PromotionFacadeStub) CheckPromotion(ctx context.Context, code string, subtotal decimal.Decimal) (model.CouponCheck, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, code, subtotal)
	}
	return model.CouponCheck{Code: model.CanonicalCode(code), Reason: "promo code is invalid or expired"}, nil
}

// HealthFacadeStub reports Err from Health.
type HealthFacadeStub struct {
	Err error
}

func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// DraftFn is the common shape of draft returning checkout operations.
type DraftFn func(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error)

// CheckoutFacadeStub simulates checkout operations. Unset functions return
// SampleDraft for the requested id.
type CheckoutFacadeStub struct {
	StartFn       func(context.Context, int64) (*model.OrderDraft, error)
	GetFn         DraftFn
	AbandonFn     func(context.Context, int64, uuid.UUID) error
	ShippingFn    func(context.Context, int64, uuid.UUID, string) (*model.OrderDraft, error)
	ToggleFn      DraftFn
	ApplyPromoFn  func(context.Context, int64, uuid.UUID, string) (*model.OrderDraft, error)
	RemovePromoFn DraftFn
	GiftWrapFn    func(context.Context, int64, uuid.UUID, bool) (*model.OrderDraft, error)
	GiftMessageFn func(context.Context, int64, uuid.UUID, string) (*model.OrderDraft, error)
	NotesFn       func(context.Context, int64, uuid.UUID, string) (*model.OrderDraft, error)
	SubmitFn      func(context.Context, int64, uuid.UUID, model.ContactInfo, model.ContactInfo) (*model.OrderConfirmation, error)
}

// SampleDraft builds a priced draft owned by userID.
func SampleDraft(id uuid.UUID, userID int64) *model.OrderDraft {
	return &model.OrderDraft{
		ID:     id,
		UserID: userID,
		Items: []model.LineItem{
			{ProductName: "mug", Quantity: 2, UnitPrice: decimal.RequireFromString("12.5")},
		},
		Subtotal:         decimal.NewFromInt(25),
		ShippingMethods:  []model.ShippingMethod{{ID: "standard", Name: "Standard", BaseCost: decimal.RequireFromString("4.9")}},
		ShippingMethodID: "standard",
		ShippingCost:     decimal.RequireFromString("4.9"),
		Status:           model.DraftStatusDraft,
		Pricing: model.PricingResult{
			Subtotal: decimal.NewFromInt(25),
			Shipping: decimal.RequireFromString("4.9"),
			Total:    decimal.RequireFromString("29.9"),
		},
	}
}

func (s CheckoutFacadeStub) StartCheckout(ctx context.Context, userID int64) (*model.OrderDraft, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, userID)
	}
	return SampleDraft(uuid.New(), userID), nil
}

func (s CheckoutFacadeStub) Checkout(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return s.orSample(s.GetFn, ctx, userID, draftID)
}

func (s CheckoutFacadeStub) AbandonCheckout(ctx context.Context, userID int64, draftID uuid.UUID) error {
	if s.AbandonFn != nil {
		return s.AbandonFn(ctx, userID, draftID)
	}
	return nil
}

func (s CheckoutFacadeStub) SetShippingMethod(ctx context.Context, userID int64, draftID uuid.UUID, methodID string) (*model.OrderDraft, error) {
	if s.ShippingFn != nil {
		return s.ShippingFn(ctx, userID, draftID, methodID)
	}
	return SampleDraft(draftID, userID), nil
}

func (s CheckoutFacadeStub) ToggleRewardPoints(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return s.orSample(s.ToggleFn, ctx, userID, draftID)
}

func (s CheckoutFacadeStub) ApplyPromoCode(ctx context.Context, userID int64, draftID uuid.UUID, code string) (*model.OrderDraft, error) {
	if s.ApplyPromoFn != nil {
		return s.ApplyPromoFn(ctx, userID, draftID, code)
	}
	return SampleDraft(draftID, userID), nil
}

func (s CheckoutFacadeStub) RemovePromoCode(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return s.orSample(s.RemovePromoFn, ctx, userID, draftID)
}

func (s CheckoutFacadeStub) SetGiftWrap(ctx context.Context, userID int64, draftID uuid.UUID, enabled bool) (*model.OrderDraft, error) {
	if s.GiftWrapFn != nil {
		return s.GiftWrapFn(ctx, userID, draftID, enabled)
	}
	return SampleDraft(draftID, userID), nil
}

func (s CheckoutFacadeStub) SetGiftMessage(ctx context.Context, userID int64, draftID uuid.UUID, message string) (*model.OrderDraft, error) {
	if s.GiftMessageFn != nil {
		return s.GiftMessageFn(ctx, userID, draftID, message)
	}
	return SampleDraft(draftID, userID), nil
}

func (s CheckoutFacadeStub) SetNotes(ctx context.Context, userID int64, draftID uuid.UUID, notes string) (*model.OrderDraft, error) {
	if s.NotesFn != nil {
		return s.NotesFn(ctx, userID, draftID, notes)
	}
	return SampleDraft(draftID, userID), nil
}

func (s CheckoutFacadeStub) SubmitCheckout(ctx context.Context, userID int64, draftID uuid.UUID, billing, shipping model.ContactInfo) (*model.OrderConfirmation, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, draftID, billing, shipping)
	}
	return &model.OrderConfirmation{OrderID: "ord-1", Status: "CREATED", Total: decimal.RequireFromString("29.9")}, nil
}

func (s CheckoutFacadeStub) orSample(fn DraftFn, ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	if fn != nil {
		return fn(ctx, userID, draftID)
	}
	return SampleDraft(draftID, userID), nil
}
