package auth

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront-checkout/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Provide(
	newPasswordHasher,
	newTokenStrategy,
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger `optional:"true"`
}

func newTokenStrategy(p strategyParams) Strategy {
	if p.Config.DefaultJWTSecret && p.Logger != nil {
		p.Logger.Warn("JWT_SECRET is not set, signing tokens with the built-in development secret")
	}
	return NewJWTStrategy(p.Config.JWTSecret, Options{})
}
