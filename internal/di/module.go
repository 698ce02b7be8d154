package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/adapter/events"
	"github.com/polkiloo/storefront-checkout/internal/adapter/storefront"
	"github.com/polkiloo/storefront-checkout/internal/app"
	"github.com/polkiloo/storefront-checkout/internal/config"
	"github.com/polkiloo/storefront-checkout/internal/logger"
	"github.com/polkiloo/storefront-checkout/internal/metrics"
	"github.com/polkiloo/storefront-checkout/internal/pkg/auth"
	"github.com/polkiloo/storefront-checkout/internal/pricing"
	"github.com/polkiloo/storefront-checkout/internal/server/http/router"
	"github.com/polkiloo/storefront-checkout/internal/storage/postgres"
	"github.com/polkiloo/storefront-checkout/internal/storage/redis"
	"github.com/polkiloo/storefront-checkout/internal/usecase"
)

// Module assembles the whole service graph. opts are appended last so callers
// can replace any node.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		pricing.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		storefront.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
