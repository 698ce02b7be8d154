package config

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/pricing"
)

// Module exposes configuration loader for fx graphs.
var Module = fx.Provide(
	Load,
	func(c *Config) pricing.Policy { return c.Pricing },
)
