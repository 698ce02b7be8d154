package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/adapter/events"
	"github.com/polkiloo/storefront-checkout/internal/config"
	"github.com/polkiloo/storefront-checkout/internal/metrics"
	"github.com/polkiloo/storefront-checkout/internal/server/http/handlers"
	"github.com/polkiloo/storefront-checkout/internal/usecase"
	"github.com/polkiloo/storefront-checkout/internal/worker"
)

const readHeaderTimeout = 5 * time.Second

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStorefrontFacade,
		func(f *StorefrontFacade) handlers.StorefrontFacade { return f },
		newHTTPServer,
		newOrderEventDispatcher,
		func(d *worker.OrderEventDispatcher) usecase.OrderEventQueue { return d },
		func(m *metrics.Metrics) usecase.CheckoutMetrics { return m },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type dispatcherParams struct {
	fx.In

	Config    *config.Config
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func newOrderEventDispatcher(p dispatcherParams) *worker.OrderEventDispatcher {
	return worker.NewOrderEventDispatcher(
		p.Publisher,
		p.Metrics,
		p.Config.EventWorkers,
		p.Config.EventQueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.OrderEventDispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting storefront checkout", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			// The event queue drains after in-flight requests finish.
			err := p.Server.Shutdown(shutdownCtx)
			p.Dispatcher.Stop(shutdownCtx)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storefront checkout stopped", slog.Int("undelivered_events", p.Dispatcher.Pending()))
			return nil
		},
	})
}
