package bootstrap

import (
	"event-bookings/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewCookieConfig,
	),
)

func NewCookieConfig(cfg config.Config) config.CookieConfig {
	return cfg.Cookie
}
