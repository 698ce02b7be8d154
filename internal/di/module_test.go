package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/app"
	"github.com/polkiloo/storefront-checkout/internal/config"
	"github.com/polkiloo/storefront-checkout/internal/domain/repository"
	"github.com/polkiloo/storefront-checkout/internal/pricing"
	"github.com/polkiloo/storefront-checkout/internal/storage/memory"
	"github.com/polkiloo/storefront-checkout/internal/storage/postgres"
	"github.com/polkiloo/storefront-checkout/internal/test"
	"github.com/polkiloo/storefront-checkout/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		StorefrontAPIAddress: "http://localhost",
		JWTSecret:            "secret",
		LogLevel:             "debug",
		UpstreamTimeout:      time.Second,
		DraftTTL:             time.Minute,
		ShutdownTimeout:      time.Millisecond,
		EventWorkers:         1,
		EventQueueSize:       1,
		Pricing:              pricing.DefaultPolicy(),
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade   *app.StorefrontFacade
		server   *http.Server
		checkout *usecase.CheckoutUseCase
		drafts   repository.DraftRepository
		queue    usecase.OrderEventQueue
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(test.NewUserRepositoryStub(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(&test.PointsRepositoryStub{}, fx.As(new(repository.PointsRepository)))),
			fx.Replace(fx.Annotate(memory.NewSeedCatalog(), fx.As(new(repository.DiscountCodeRepository)))),
		),
		fx.Populate(&facade, &server, &checkout, &drafts, &queue),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	if facade == nil || checkout == nil || queue == nil {
		t.Fatal("expected facade, checkout use case and event queue")
	}
	if server.Addr != ":0" || server.Handler == nil {
		t.Fatalf("unexpected server %+v", server)
	}
	if _, ok := drafts.(*memory.DraftStore); !ok {
		t.Fatalf("expected in-memory drafts without redis, got %T", drafts)
	}

	codes, err := facade.Promotions(context.Background())
	if err != nil || len(codes) == 0 {
		t.Fatalf("expected seeded promotions, got %v %v", codes, err)
	}
}
