package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// PointsFacade exposes the reward points hint.
type PointsFacade interface {
	PointsSummary(ctx context.Context, userID int64, orderTotal decimal.Decimal) (model.PointsSummary, error)
}

// PromotionFacade exposes the promo code catalog.
type PromotionFacade interface {
	Promotions(ctx context.Context) ([]model.DiscountCode, error)
	CheckPromotion(ctx context.Context, code string, subtotal decimal.Decimal) (model.CouponCheck, error)
}

// CheckoutFacade drives checkout drafts.
type CheckoutFacade interface {
	StartCheckout(ctx context.Context, userID int64) (*model.OrderDraft, error)
	Checkout(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error)
	AbandonCheckout(ctx context.Context, userID int64, draftID uuid.UUID) error
	SetShippingMethod(ctx context.Context, userID int64, draftID uuid.UUID, methodID string) (*model.OrderDraft, error)
	ToggleRewardPoints(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error)
	ApplyPromoCode(ctx context.Context, userID int64, draftID uuid.UUID, code string) (*model.OrderDraft, error)
	RemovePromoCode(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error)
	SetGiftWrap(ctx context.Context, userID int64, draftID uuid.UUID, enabled bool) (*model.OrderDraft, error)
	SetGiftMessage(ctx context.Context, userID int64, draftID uuid.UUID, message string) (*model.OrderDraft, error)
	SetNotes(ctx context.Context, userID int64, draftID uuid.UUID, notes string) (*model.OrderDraft, error)
	SubmitCheckout(ctx context.Context, userID int64, draftID uuid.UUID, billing, shipping model.ContactInfo) (*model.OrderConfirmation, error)
}

// HealthFacade reports whether backing services are reachable.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	PointsFacade
	PromotionFacade
	CheckoutFacade
	HealthFacade
}
