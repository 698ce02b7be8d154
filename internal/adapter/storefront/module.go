package storefront

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/config"
	"github.com/polkiloo/storefront-checkout/internal/usecase"
)

// Module exposes the storefront client under each checkout collaborator contract.
var Module = fx.Provide(
	newClient,
	func(c *Client) usecase.CartProvider { return c },
	func(c *Client) usecase.ShippingProvider { return c },
	func(c *Client) usecase.OrderSubmitter { return c },
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*Client, error) {
	return NewClient(p.Config.StorefrontAPIAddress, p.Config.UpstreamTimeout, p.Logger)
}
