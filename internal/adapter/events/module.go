package events

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/config"
)

// Module provides the order event Publisher.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("kafka brokers not configured, order events are dropped")
		return NewNoopPublisher(p.Logger)
	}

	publisher := NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaOrderTopic)
	p.Logger.Info("publishing order events",
		slog.String("brokers", strings.Join(p.Config.KafkaBrokers, ",")),
		slog.String("topic", p.Config.KafkaOrderTopic),
	)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
