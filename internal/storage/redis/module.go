package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/config"
	"github.com/polkiloo/storefront-checkout/internal/domain/repository"
	"github.com/polkiloo/storefront-checkout/internal/storage/memory"
)

// Module provides the checkout draft repository. Drafts live in Redis when an
// address is configured and in process memory otherwise.
var Module = fx.Provide(newDraftRepository)

type draftParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var newClient = func(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func newDraftRepository(p draftParams) repository.DraftRepository {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("redis address not set, keeping checkout drafts in memory")
		return memory.NewDraftStore()
	}

	client := newClient(p.Config)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis ping failed", slog.String("addr", p.Config.RedisAddress), slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewDraftStore(client)
}
