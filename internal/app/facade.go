package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/usecase"
)

// HealthChecker verifies a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade adapts the use cases to the HTTP layer.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	checkout *usecase.CheckoutUseCase
	points   *usecase.PointsUseCase
	catalog  *usecase.DiscountCatalog
	health   HealthChecker
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, checkout *usecase.CheckoutUseCase, points *usecase.PointsUseCase, catalog *usecase.DiscountCatalog, health HealthChecker) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, checkout: checkout, points: points, catalog: catalog, health: health}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, password string) (string, error) {
	session, err := f.auth.Register(ctx, login, password)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	session, err := f.auth.Authenticate(ctx, login, password)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

// PointsSummary reports an empty balance for users without a points account.
func (f *StorefrontFacade) PointsSummary(ctx context.Context, userID int64, orderTotal decimal.Decimal) (model.PointsSummary, error) {
	summary, err := f.points.Summary(ctx, userID, orderTotal)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return model.PointsSummary{Value: decimal.Zero}, nil
	}
	return summary, err
}

func (f *StorefrontFacade) Promotions(ctx context.Context) ([]model.DiscountCode, error) {
	return f.catalog.List(ctx)
}

func (f *StorefrontFacade) CheckPromotion(ctx context.Context, code string, subtotal decimal.Decimal) (model.CouponCheck, error) {
	return f.catalog.Check(ctx, code, subtotal)
}

func (f *StorefrontFacade) StartCheckout(ctx context.Context, userID int64) (*model.OrderDraft, error) {
	return f.checkout.Start(ctx, userID)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return f.checkout.Get(ctx, userID, draftID)
}

func (f *StorefrontFacade) AbandonCheckout(ctx context.Context, userID int64, draftID uuid.UUID) error {
	return f.checkout.Abandon(ctx, userID, draftID)
}

func (f *StorefrontFacade) SetShippingMethod(ctx context.Context, userID int64, draftID uuid.UUID, methodID string) (*model.OrderDraft, error) {
	return f.checkout.SetShippingMethod(ctx, userID, draftID, methodID)
}

func (f *StorefrontFacade) ToggleRewardPoints(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return f.checkout.ToggleRewardPoints(ctx, userID, draftID)
}

func (f *StorefrontFacade) ApplyPromoCode(ctx context.Context, userID int64, draftID uuid.UUID, code string) (*model.OrderDraft, error) {
	return f.checkout.ApplyPromoCode(ctx, userID, draftID, code)
}

func (f *StorefrontFacade) RemovePromoCode(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return f.checkout.RemovePromoCode(ctx, userID, draftID)
}

func (f *StorefrontFacade) SetGiftWrap(ctx context.Context, userID int64, draftID uuid.UUID, enabled bool) (*model.OrderDraft, error) {
	return f.checkout.SetGiftWrap(ctx, userID, draftID, enabled)
}

func (f *StorefrontFacade) SetGiftMessage(ctx context.Context, userID int64, draftID uuid.UUID, message string) (*model.OrderDraft, error) {
	return f.checkout.SetGiftMessage(ctx, userID, draftID, message)
}

func (f *StorefrontFacade) SetNotes(ctx context.Context, userID int64, draftID uuid.UUID, notes string) (*model.OrderDraft, error) {
	return f.checkout.SetNotes(ctx, userID, draftID, notes)
}

func (f *StorefrontFacade) SubmitCheckout(ctx context.Context, userID int64, draftID uuid.UUID, billing, shipping model.ContactInfo) (*model.OrderConfirmation, error) {
	return f.checkout.Submit(ctx, userID, draftID, usecase.SubmitRequest{Billing: billing, Shipping: shipping})
}

// Health is nil when no checker is wired.
func (f *StorefrontFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
