package auth

import (
	"github.com/polkiloo/bankportal/internal/config"
	"go.uber.org/fx"
)

// Module provides the cookie strategy and token sealer via fx.
var Module = fx.Options(
	fx.Provide(newTokenStrategy),
	fx.Provide(newTokenSealer),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	opts := Options{TTL: p.Config.SessionTTL}
	if p.Config.SessionStrategy == config.StrategyHMAC {
		return NewHMACStrategy(p.Config.SessionSecret, opts)
	}
	return NewJWTStrategy(p.Config.SessionSecret, opts)
}

func newTokenSealer(p strategyParams) (TokenSealer, error) {
	return NewAEADSealer(p.Config.SessionSecret)
}
