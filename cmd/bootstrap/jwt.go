package bootstrap

import (
	"log/slog"

	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config, logger *slog.Logger) *jwt.Service {
	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set, operator endpoints will reject every token")
	}
	return jwt.NewServiceFromConfig(cfg.JWT)
}
