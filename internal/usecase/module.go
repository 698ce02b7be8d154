package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/config"
	"github.com/polkiloo/storefront-checkout/internal/domain/repository"
	"github.com/polkiloo/storefront-checkout/internal/pricing"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewPointsUseCase,
	NewDiscountCatalog,
	newCheckoutUseCase,
)

type checkoutParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Drafts   repository.DraftRepository
	Points   repository.PointsRepository
	Catalog  *DiscountCatalog
	Calc     *pricing.Calculator
	Cart     CartProvider
	Shipping ShippingProvider
	Orders   OrderSubmitter
	Events   OrderEventQueue
	Metrics  CheckoutMetrics
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(CheckoutDeps{
		Drafts:   p.Drafts,
		Points:   p.Points,
		Catalog:  p.Catalog,
		Calc:     p.Calc,
		Cart:     p.Cart,
		Shipping: p.Shipping,
		Orders:   p.Orders,
		Events:   p.Events,
		Metrics:  p.Metrics,
		Logger:   p.Logger,
		Limits: CheckoutLimits{
			GiftMessage: p.Config.GiftMessageLimit,
			Notes:       p.Config.NotesLimit,
			DraftTTL:    p.Config.DraftTTL,
		},
	})
}
